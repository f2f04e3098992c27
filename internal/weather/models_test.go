package weather

import "testing"

func TestParseUnits(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Units
	}{
		{name: "metric", input: "metric", want: UnitsMetric},
		{name: "imperial", input: "imperial", want: UnitsImperial},
		{name: "empty defaults to imperial", input: "", want: UnitsImperial},
		{name: "unknown defaults to imperial", input: "kelvin", want: UnitsImperial},
		{name: "case sensitive", input: "Metric", want: UnitsImperial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseUnits(tt.input); got != tt.want {
				t.Errorf("ParseUnits(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestUnitLabels(t *testing.T) {
	tests := []struct {
		units      Units
		temp       string
		wind       string
		visibility string
	}{
		{units: UnitsImperial, temp: "°F", wind: "mph", visibility: "mi"},
		{units: UnitsMetric, temp: "°C", wind: "km/h", visibility: "km"},
	}

	for _, tt := range tests {
		t.Run(string(tt.units), func(t *testing.T) {
			if got := tt.units.TempUnit(); got != tt.temp {
				t.Errorf("TempUnit() = %q, want %q", got, tt.temp)
			}
			if got := tt.units.WindUnit(); got != tt.wind {
				t.Errorf("WindUnit() = %q, want %q", got, tt.wind)
			}
			if got := tt.units.VisibilityUnit(); got != tt.visibility {
				t.Errorf("VisibilityUnit() = %q, want %q", got, tt.visibility)
			}
		})
	}
}
