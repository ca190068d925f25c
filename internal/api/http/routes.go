package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/i474232898/gas-sensor-assistant/internal/assistant"
	"github.com/i474232898/gas-sensor-assistant/internal/metrics"
	"github.com/i474232898/gas-sensor-assistant/internal/scheduler"
	"github.com/i474232898/gas-sensor-assistant/internal/store"
)

// ServiceName is reported by the liveness endpoints.
const ServiceName = "gas-sensor-assistant"

const (
	msgEmptyPayload     = "Erreur: Payload JSON invalide."
	msgInvalidJSON      = "Erreur: Impossible de parser le JSON: "
	msgMalformedRequest = "Erreur: Requête mal formée, queryResult ou intent manquant."
	msgStoreNotReady    = "Erreur: Base de données non initialisée."
	msgStoreReadFailed  = "Erreur: Impossible de récupérer les données: "
)

var validate = validator.New()

// StatusReporter exposes the last store probe result.
type StatusReporter interface {
	Status() scheduler.Status
}

// Deps are the collaborators the routes need. Health and Metrics are optional.
type Deps struct {
	Service *assistant.Service
	Health  StatusReporter
	Metrics *metrics.Metrics
}

// webhookRequest is the part of the Dialogflow ES webhook request we use.
type webhookRequest struct {
	ResponseID  string       `json:"responseId"`
	Session     string       `json:"session"`
	QueryResult *queryResult `json:"queryResult" validate:"required"`
}

type queryResult struct {
	QueryText    string       `json:"queryText"`
	LanguageCode string       `json:"languageCode"`
	Intent       *intentField `json:"intent" validate:"required"`
}

type intentField struct {
	DisplayName string `json:"displayName" validate:"required"`
}

// webhookResponse is used for successes and errors alike.
type webhookResponse struct {
	FulfillmentText string `json:"fulfillmentText"`
}

// ErrorHandler renders every error as a fulfillment body so the agent can
// read it back to the user.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(webhookResponse{FulfillmentText: err.Error()})
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(ServiceName + " is running!")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		body := fiber.Map{
			"status":  "ok",
			"service": ServiceName,
		}
		if deps.Health != nil {
			body["store"] = deps.Health.Status()
		}
		return c.JSON(body)
	})

	app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))

	app.Post("/process_command", func(c *fiber.Ctx) error {
		req, err := parseWebhookRequest(c.Body())
		if err != nil {
			return err
		}

		displayName := req.QueryResult.Intent.DisplayName
		intent := assistant.ParseIntent(displayName)
		slog.Info("intent received",
			"request_id", c.Locals("requestid"),
			"display_name", displayName,
			"intent", intent.String(),
		)

		text, err := deps.Service.Fulfill(c.UserContext(), intent)
		if err != nil {
			slog.Error("fulfillment failed",
				"request_id", c.Locals("requestid"),
				"intent", intent.String(),
				"error", err,
			)
			if errors.Is(err, store.ErrUnavailable) {
				return fiber.NewError(fiber.StatusInternalServerError, msgStoreNotReady)
			}
			return fiber.NewError(fiber.StatusInternalServerError, msgStoreReadFailed+err.Error())
		}

		return c.JSON(webhookResponse{FulfillmentText: text})
	})
}

func parseWebhookRequest(body []byte) (webhookRequest, error) {
	var req webhookRequest

	if len(bytes.TrimSpace(body)) == 0 {
		return req, fiber.NewError(fiber.StatusBadRequest, msgEmptyPayload)
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return req, fiber.NewError(fiber.StatusBadRequest, msgInvalidJSON+err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return req, fiber.NewError(fiber.StatusBadRequest, msgMalformedRequest)
	}
	return req, nil
}
