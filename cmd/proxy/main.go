package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"unleashed-proxy/internal/alerts"
	"unleashed-proxy/internal/audit"
	"unleashed-proxy/internal/cache"
	"unleashed-proxy/internal/config"
	"unleashed-proxy/internal/paginate"
	"unleashed-proxy/internal/routes"
	"unleashed-proxy/internal/routes/resources"
	"unleashed-proxy/internal/unleashed"
)

type App struct {
	Router routes.Router
}

func NewApp() App {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	cfg := config.FromEnv()
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		panic("Failed to load AWS config.")
	}
	var store cache.Store
	if cfg.CacheBucket != "" {
		store = cache.NewS3Store(*s3.NewFromConfig(awsCfg), cfg.CacheBucket, cfg.CacheTTL)
	}
	var recorder audit.Recorder = audit.Discard{}
	if cfg.AuditTable != "" {
		recorder = audit.NewDynamoDBService(cfg.AuditTable, *dynamodb.NewFromConfig(awsCfg))
	}
	var notifier alerts.Notifier = alerts.Discard{}
	if cfg.AlertTopic != "" {
		notifier = &alerts.SNSService{
			Sns:      *sns.NewFromConfig(awsCfg),
			TopicArn: cfg.AlertTopic,
		}
	}
	client := unleashed.NewClient(cfg.APIURL, unleashed.Credentials{
		APIID:  cfg.APIID,
		APIKey: cfg.APIKey,
	})
	engine := paginate.NewEngine(client)
	router := routes.NewRouter(
		resources.NewRoute(cfg, engine, store, recorder, notifier),
	)
	return App{
		Router: *router,
	}
}

func (app *App) HandleRequest(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return app.Router.Invoke(request, ctx), nil
}

func main() {
	app := NewApp()
	lambda.Start(app.HandleRequest)
}
