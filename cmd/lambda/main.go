package main

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"

	"github.com/webinarlab/lead-intake/internal/config"
	"github.com/webinarlab/lead-intake/internal/infra/http/handlers"
	"github.com/webinarlab/lead-intake/internal/infra/integration/aweber"
	"github.com/webinarlab/lead-intake/internal/infra/integration/sheets"
	"github.com/webinarlab/lead-intake/internal/usecase"
)

var leadHandler *handlers.LeadHandler

func init() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("configuration error: ", err)
	}

	submitLeadUC := usecase.NewSubmitLeadUseCase(
		sheets.NewClient(cfg.Sheets),
		aweber.NewClient(cfg.AWeber),
		cfg.CampaignTag,
	)
	leadHandler = handlers.NewLeadHandler(submitLeadUC)
}

func handler(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	status, resp := leadHandler.Process(ctx, event.HTTPMethod, []byte(event.Body))

	body, err := json.Marshal(resp)
	if err != nil {
		return events.APIGatewayProxyResponse{
			StatusCode: 500,
			Headers:    handlers.CORSHeaders(),
			Body:       `{"error": "Internal server error"}`,
		}, nil
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    handlers.CORSHeaders(),
		Body:       string(body),
	}, nil
}

func main() {
	awslambda.Start(handler)
}
