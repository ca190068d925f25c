package assistant

import (
	"strings"

	"github.com/i474232898/gas-sensor-assistant/internal/sensor"
)

// Intent is the request kind classified by the conversational agent.
type Intent int

const (
	IntentUnknown Intent = iota
	IntentWelcome
	IntentCOLevel
	IntentCheckDanger
	IntentTemperature
	IntentHumidity
	IntentLPG
)

// displayNames maps agent intent names, lower-cased, to intents. The short
// French names (temp, hum, gpl) are the ones configured on the deployed agent.
var displayNames = map[string]Intent{
	"default_welcome_intent": IntentWelcome,
	"default welcome intent": IntentWelcome,
	"welcome":                IntentWelcome,
	"get_co_level":           IntentCOLevel,
	"check_danger":           IntentCheckDanger,
	"temp":                   IntentTemperature,
	"temperature":            IntentTemperature,
	"hum":                    IntentHumidity,
	"humidity":               IntentHumidity,
	"gpl":                    IntentLPG,
	"lpg":                    IntentLPG,
}

// ParseIntent maps an agent display name to an Intent.
func ParseIntent(displayName string) Intent {
	if in, ok := displayNames[strings.ToLower(strings.TrimSpace(displayName))]; ok {
		return in
	}
	return IntentUnknown
}

func (i Intent) String() string {
	switch i {
	case IntentWelcome:
		return "welcome"
	case IntentCOLevel:
		return "get_co_level"
	case IntentCheckDanger:
		return "check_danger"
	case IntentTemperature:
		return "temperature"
	case IntentHumidity:
		return "humidity"
	case IntentLPG:
		return "lpg"
	default:
		return "unknown"
	}
}

// Field returns the measurement an intent needs. ok is false for intents
// answered without reading the store.
func (i Intent) Field() (f sensor.Field, ok bool) {
	switch i {
	case IntentCOLevel, IntentCheckDanger:
		return sensor.FieldCO, true
	case IntentTemperature:
		return sensor.FieldTemperature, true
	case IntentHumidity:
		return sensor.FieldHumidity, true
	case IntentLPG:
		return sensor.FieldLPG, true
	default:
		return "", false
	}
}
