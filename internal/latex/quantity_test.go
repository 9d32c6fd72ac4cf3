package latex

import "testing"

func TestQuantity(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		unit  string
		opts  map[string]string
		want  string
	}{
		{
			name:  "bare number",
			value: 1.5,
			want:  "\\num{1.500000}",
		},
		{
			name:  "with unit",
			value: 9.81,
			unit:  "\\meter\\per\\second\\squared",
			want:  "\\SI{9.810000}{\\meter\\per\\second\\squared}",
		},
		{
			name:  "with options",
			value: 2,
			opts:  map[string]string{"round-mode": "places"},
			want:  "\\num[\nround-mode=places\n]{2.000000}",
		},
		{
			name:  "unit and options",
			value: 3,
			unit:  "\\kilogram",
			opts:  map[string]string{"round-mode": "places", "round-precision": "3"},
			want:  "\\SI[\nround-mode=places\nround-precision=3\n]{3.000000}{\\kilogram}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quantity(tt.value, tt.unit, tt.opts); got != tt.want {
				t.Errorf("Quantity() = %q, want %q", got, tt.want)
			}
		})
	}
}
