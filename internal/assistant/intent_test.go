package assistant

import (
	"testing"

	"github.com/i474232898/gas-sensor-assistant/internal/sensor"
)

func TestParseIntent(t *testing.T) {
	cases := map[string]Intent{
		"Default_Welcome_Intent": IntentWelcome,
		"Default Welcome Intent": IntentWelcome,
		"get_co_level":           IntentCOLevel,
		"check_danger":           IntentCheckDanger,
		"temp":                   IntentTemperature,
		"Temperature":            IntentTemperature,
		" hum ":                  IntentHumidity,
		"gpl":                    IntentLPG,
		"LPG":                    IntentLPG,
		"order_pizza":            IntentUnknown,
		"":                       IntentUnknown,
	}
	for name, want := range cases {
		if got := ParseIntent(name); got != want {
			t.Errorf("ParseIntent(%q) = %s; want %s", name, got, want)
		}
	}
}

func TestIntentField(t *testing.T) {
	cases := []struct {
		intent Intent
		field  sensor.Field
		ok     bool
	}{
		{IntentWelcome, "", false},
		{IntentUnknown, "", false},
		{IntentCOLevel, sensor.FieldCO, true},
		{IntentCheckDanger, sensor.FieldCO, true},
		{IntentTemperature, sensor.FieldTemperature, true},
		{IntentHumidity, sensor.FieldHumidity, true},
		{IntentLPG, sensor.FieldLPG, true},
	}
	for _, tc := range cases {
		field, ok := tc.intent.Field()
		if field != tc.field || ok != tc.ok {
			t.Errorf("%s.Field() = %q, %v; want %q, %v", tc.intent, field, ok, tc.field, tc.ok)
		}
	}
}
