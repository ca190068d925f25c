package assistant

import (
	"fmt"
	"strconv"

	"github.com/i474232898/gas-sensor-assistant/internal/sensor"
)

// CODangerThreshold is the CO level in ppm above which the air is reported
// as dangerous. The boundary itself is safe.
const CODangerThreshold = 400.0

const (
	WelcomeText = "Bonjour ! Je suis ici pour vous aider à surveiller les niveaux de CO, GPL, température et humidité. " +
		"Posez-moi une question comme 'Quel est le niveau de CO ?' ou 'Quel est le niveau de GPL ?'."
	NoDataText        = "Désolé, je n'ai pas pu récupérer les données des capteurs."
	NotUnderstoodText = "Désolé, je n'ai pas compris votre demande."
)

// IsDangerous reports whether a CO reading crosses the danger threshold.
func IsDangerous(co float64) bool {
	return co > CODangerThreshold
}

// describe renders the fulfillment sentence for a selected record.
func describe(intent Intent, rec sensor.Record) string {
	switch intent {
	case IntentWelcome:
		return WelcomeText
	case IntentCOLevel:
		co, ok := rec.Value(sensor.FieldCO)
		if !ok {
			return "Désolé, la valeur de CO n'est pas disponible."
		}
		return fmt.Sprintf("Le niveau de CO actuel est de %s ppm.", formatNumber(co))
	case IntentCheckDanger:
		co, ok := rec.Value(sensor.FieldCO)
		switch {
		case !ok:
			return "Désolé, la valeur de CO n'est pas disponible pour l'évaluation du danger."
		case IsDangerous(co):
			return fmt.Sprintf("Alerte ! Le niveau de CO est de %s ppm, ce qui est dangereux.", formatNumber(co))
		default:
			return fmt.Sprintf("Le niveau de CO est de %s ppm, aucun danger détecté.", formatNumber(co))
		}
	case IntentTemperature:
		temp, ok := rec.Value(sensor.FieldTemperature)
		if !ok {
			return "Désolé, la température n'est pas disponible pour le moment."
		}
		return fmt.Sprintf("La température actuelle est de %s°C.", formatNumber(temp))
	case IntentHumidity:
		hum, ok := rec.Value(sensor.FieldHumidity)
		if !ok {
			return "Désolé, l'humidité n'est pas disponible pour le moment."
		}
		return fmt.Sprintf("Le taux d'humidité actuel est de %s%%.", formatNumber(hum))
	case IntentLPG:
		lpg, ok := rec.Value(sensor.FieldLPG)
		if !ok {
			return "Désolé, le niveau de GPL n'est pas disponible."
		}
		return fmt.Sprintf("Le niveau de gaz de pétrole liquéfié (GPL) est de %s ppm.", formatNumber(lpg))
	default: // IntentUnknown
		return NotUnderstoodText
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
