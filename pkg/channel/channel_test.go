package channel

import "testing"

func TestCenterMHz(t *testing.T) {
	tests := []struct {
		centerTHz float64
		want      int64
	}{
		{194.7, 194700000},
		{193.1, 193100000},
		{191.325, 191325000},
		// float noise must round onto the grid, not truncate off it
		{194.69999999999999, 194700000},
		{0, 0},
	}

	for _, tt := range tests {
		c := Channel{CenterTHz: tt.centerTHz}
		if got := c.CenterMHz(); got != tt.want {
			t.Errorf("CenterMHz(%v THz) = %d, want %d", tt.centerTHz, got, tt.want)
		}
	}
}

func TestKey(t *testing.T) {
	c := Channel{Port: "E1", CenterTHz: 194.7}
	key := c.Key()
	if key.Port != "E1" || key.CenterMHz != 194700000 {
		t.Errorf("Key() = %+v", key)
	}
	if got := key.String(); got != "E1/194700000" {
		t.Errorf("Key.String() = %q, want E1/194700000", got)
	}

	same := Channel{Port: "E1", CenterTHz: 194.7, Attenuation: 99}
	if c.Key() != same.Key() {
		t.Error("keys should match regardless of attenuation")
	}
	other := Channel{Port: "E2", CenterTHz: 194.7}
	if c.Key() == other.Key() {
		t.Error("keys on different ports should differ")
	}
}

func TestPassthrough(t *testing.T) {
	if !(Channel{Name: "C-band"}).Passthrough() {
		t.Error("channel without a port should be passthrough")
	}
	if (Channel{Name: "C59", Port: "E1"}).Passthrough() {
		t.Error("channel with a port should not be passthrough")
	}
}

func TestEqual(t *testing.T) {
	base := Channel{
		Name:        "C59",
		Port:        "E1",
		Attenuation: 10,
		CenterTHz:   194.7,
		SpanGHz:     50,
		Description: "Prague to Vienna",
	}

	tests := []struct {
		name   string
		mutate func(Channel) Channel
		want   bool
	}{
		{"identical", func(c Channel) Channel { return c }, true},
		{"attenuation differs", func(c Channel) Channel { c.Attenuation = 5; return c }, false},
		{"span differs", func(c Channel) Channel { c.SpanGHz = 75; return c }, false},
		{"description differs", func(c Channel) Channel { c.Description = "rerouted"; return c }, false},
		{"name differs", func(c Channel) Channel { c.Name = "C60"; return c }, false},
		{"port differs", func(c Channel) Channel { c.Port = "E2"; return c }, false},
		// edges are derived from the plan, so they carry no weight
		{"edges differ", func(c Channel) Channel { c.LowerMHz = 1; c.UpperMHz = 2; return c }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Equal(tt.mutate(base)); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEqual_Passthrough(t *testing.T) {
	a := Channel{Name: "C-band"}
	b := Channel{Name: "C-band", Attenuation: 3, Description: "spectrum"}
	if !a.Equal(b) {
		t.Error("passthrough channels with the same name should be equal")
	}

	c := Channel{Name: "C-band-2"}
	if a.Equal(c) {
		t.Error("passthrough channels with different names should not be equal")
	}

	d := Channel{Name: "C-band", Port: "E1"}
	if a.Equal(d) {
		t.Error("passthrough and add/drop channels should not be equal")
	}
}

func TestString(t *testing.T) {
	c := Channel{Name: "C59", Port: "E1", Attenuation: 10, SpanGHz: 50}
	if got := c.String(); got != "C59 port E1 att 10.0dB span 50GHz" {
		t.Errorf("String() = %q", got)
	}

	p := Channel{Name: "C-band"}
	if got := p.String(); got != "C-band (passthrough)" {
		t.Errorf("String() = %q", got)
	}

	unresolved := Channel{Port: "E1", CenterTHz: 194.7, Attenuation: 10, SpanGHz: 50}
	if got := unresolved.String(); got != "194.700THz port E1 att 10.0dB span 50GHz" {
		t.Errorf("String() = %q", got)
	}
}

func TestSortKey(t *testing.T) {
	named := Channel{Name: "C59", Port: "E1", CenterTHz: 194.7}
	if got := named.SortKey(); got != "C59" {
		t.Errorf("SortKey() = %q, want C59", got)
	}

	unresolved := Channel{Port: "E1", CenterTHz: 194.7}
	if got := unresolved.SortKey(); got != "E1/194700000" {
		t.Errorf("SortKey() = %q, want E1/194700000", got)
	}
}
