package util

import (
	"encoding/json"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
)

func SerializeResponse(thing any, statusCode int) (events.APIGatewayV2HTTPResponse, error) {
	body, err := json.Marshal(thing)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	return RawResponse(body, statusCode), nil
}

func SerializeResponseOK(thing any, err error) (events.APIGatewayV2HTTPResponse, error) {
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	return SerializeResponse(thing, 200)
}

// RawResponse wraps pre-serialized JSON, e.g. a cached payload.
func RawResponse(body []byte, statusCode int) events.APIGatewayV2HTTPResponse {
	headers := map[string]string{
		"Content-Type":   "application/json",
		"Content-Length": strconv.Itoa(len(body)),
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Headers:    headers,
		Body:       string(body),
	}
}
