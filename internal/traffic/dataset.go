package traffic

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Record is one historical traffic observation: a route at a specific hour
// and day, with the congestion score and its derived metrics. Records are
// the training rows consumed by the congestion predictor.
type Record struct {
	RouteID       string  `json:"route_id"`
	Source        string  `json:"source"`
	Destination   string  `json:"destination"`
	DistanceKm    float64 `json:"distance_km"`
	Hour          int     `json:"hour"`
	DayOfWeek     int     `json:"day_of_week"`
	Level         Level   `json:"traffic_level"`
	Congestion    float64 `json:"congestion_score"`
	AvgSpeedKmh   float64 `json:"avg_speed_kmh"`
	TravelTimeMin float64 `json:"travel_time_min"`
	FuelL         float64 `json:"fuel_consumption_l"`
	CO2Kg         float64 `json:"co2_emission_kg"`
}

var csvHeader = []string{
	"route_id", "source", "destination", "distance_km",
	"hour", "day_of_week", "traffic_level", "congestion_score",
	"avg_speed_kmh", "travel_time_min", "fuel_consumption_l", "co2_emission_kg",
}

// WriteCSV writes records with a header row.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.RouteID,
			rec.Source,
			rec.Destination,
			formatFloat(rec.DistanceKm),
			strconv.Itoa(rec.Hour),
			strconv.Itoa(rec.DayOfWeek),
			string(rec.Level),
			formatFloat(rec.Congestion),
			formatFloat(rec.AvgSpeedKmh),
			formatFloat(rec.TravelTimeMin),
			formatFloat(rec.FuelL),
			formatFloat(rec.CO2Kg),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write record %s: %w", rec.RouteID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses records written by WriteCSV. The header row is required.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, name := range csvHeader {
		if header[i] != name {
			return nil, fmt.Errorf("unexpected column %d: got %q, want %q", i, header[i], name)
		}
	}

	var records []Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		rec, err := parseRecord(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRecord(row []string) (Record, error) {
	rec := Record{
		RouteID:     row[0],
		Source:      row[1],
		Destination: row[2],
		Level:       Level(row[6]),
	}
	var err error
	if rec.DistanceKm, err = strconv.ParseFloat(row[3], 64); err != nil {
		return rec, fmt.Errorf("distance_km: %w", err)
	}
	if rec.Hour, err = strconv.Atoi(row[4]); err != nil {
		return rec, fmt.Errorf("hour: %w", err)
	}
	if rec.DayOfWeek, err = strconv.Atoi(row[5]); err != nil {
		return rec, fmt.Errorf("day_of_week: %w", err)
	}
	if rec.Congestion, err = strconv.ParseFloat(row[7], 64); err != nil {
		return rec, fmt.Errorf("congestion_score: %w", err)
	}
	if rec.AvgSpeedKmh, err = strconv.ParseFloat(row[8], 64); err != nil {
		return rec, fmt.Errorf("avg_speed_kmh: %w", err)
	}
	if rec.TravelTimeMin, err = strconv.ParseFloat(row[9], 64); err != nil {
		return rec, fmt.Errorf("travel_time_min: %w", err)
	}
	if rec.FuelL, err = strconv.ParseFloat(row[10], 64); err != nil {
		return rec, fmt.Errorf("fuel_consumption_l: %w", err)
	}
	if rec.CO2Kg, err = strconv.ParseFloat(row[11], 64); err != nil {
		return rec, fmt.Errorf("co2_emission_kg: %w", err)
	}
	return rec, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
