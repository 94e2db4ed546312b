package resources

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"unleashed-proxy/internal/alerts"
	"unleashed-proxy/internal/audit"
	"unleashed-proxy/internal/cache"
	"unleashed-proxy/internal/config"
	"unleashed-proxy/internal/exceptions"
	"unleashed-proxy/internal/flatten"
	"unleashed-proxy/internal/paginate"
	"unleashed-proxy/internal/routes"
	"unleashed-proxy/internal/routes/util"
	"unleashed-proxy/internal/unleashed"
)

// ProxyService exposes one aggregated and one chunked GET route per resource
// in the registry.
type ProxyService struct {
	Registry map[unleashed.ResourceType]unleashed.Resource
	Config   config.Config
	Engine   *paginate.Engine
	Cache    cache.Store // nil disables caching
	Audit    audit.Recorder
	Alerts   alerts.Notifier
	Logger   *slog.Logger
}

func NewRoute(cfg config.Config, engine *paginate.Engine, store cache.Store, recorder audit.Recorder, notifier alerts.Notifier) routes.Service {
	return &ProxyService{
		Registry: unleashed.Registry(),
		Config:   cfg,
		Engine:   engine,
		Cache:    store,
		Audit:    recorder,
		Alerts:   notifier,
		Logger:   slog.Default(),
	}
}

func (s *ProxyService) GetRoutes() map[string]routes.Route {
	m := make(map[string]routes.Route, 2*len(s.Registry))
	for resourceType := range s.Registry {
		m["GET:/Unleashed"+string(resourceType)] = s.handle(resourceType, false)
		m["GET:/Unleashed"+string(resourceType)+"Chunked"] = s.handle(resourceType, true)
	}
	return m
}

func (s *ProxyService) handle(resourceType unleashed.ResourceType, chunked bool) routes.Route {
	return func(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
		start := time.Now()
		if err := s.Config.ValidateCredentials(); err != nil {
			return events.APIGatewayV2HTTPResponse{}, err
		}
		resource := s.Registry[resourceType]
		filters, controls, err := unleashed.SanitizeFilters(resource, event.QueryStringParameters)
		if err != nil {
			return events.APIGatewayV2HTTPResponse{}, err
		}
		canonical := unleashed.CanonicalQuery(filters)

		// Only a full fetch from page one is cacheable: chunked and
		// single-page results vary by continuation state that is not
		// part of the cache key. Flattening changes the cached bytes,
		// so it is part of the key.
		flattening := controls.Flatten && resource.LineField != ""
		cacheQuery := canonical
		if flattening {
			cacheQuery = canonical + "&flatten=true"
		}
		fullFetch := !chunked && !controls.SinglePage && controls.StartPage == 1
		if fullFetch && s.Cache != nil {
			if payload, ok := s.Cache.Get(ctx, string(resourceType), cacheQuery); ok {
				s.recordAudit(ctx, audit.Entry{
					ResourceType:   string(resourceType),
					CanonicalQuery: canonical,
					StopReason:     "CacheHit",
					StatusCode:     200,
					CacheHit:       true,
					DurationMillis: time.Since(start).Milliseconds(),
				})
				return util.RawResponse(payload, 200), nil
			}
		}

		pageLimit := 0
		if chunked {
			pageLimit = controls.ChunkSize
			if pageLimit == 0 {
				pageLimit = resource.DefaultChunkSize
			}
		}
		if controls.SinglePage {
			pageLimit = 1
		}

		result := s.Engine.Paginate(ctx, resource, filters, controls.StartPage, pageLimit)
		entry := audit.Entry{
			ResourceType:   string(resourceType),
			CanonicalQuery: canonical,
			StopReason:     string(result.StopReason),
			StartPage:      result.StartPage,
			LastPage:       result.LastPage,
			ItemCount:      len(result.Items),
		}

		if result.StopReason == paginate.UpstreamError {
			if err := s.Alerts.UpstreamFailure(ctx, string(resourceType), result.Err); err != nil {
				s.Logger.Warn("failed to publish upstream failure alert",
					slog.String("resource", string(resourceType)),
					slog.String("error", err.Error()))
			}
			requestErr := translateFetchError(result.Err)
			entry.StatusCode = requestErr.ToServiceError().StatusCode
			entry.DurationMillis = time.Since(start).Milliseconds()
			s.recordAudit(ctx, entry)
			return events.APIGatewayV2HTTPResponse{}, requestErr
		}

		items := result.Items
		if flattening {
			items = flatten.Records(items, resource.LineField)
		}
		response := ResourceResponse{Items: items}
		if !controls.SinglePage && (chunked || result.HasMorePages()) {
			response.ChunkInfo = NewChunkInfo(result)
		}
		resp, err := util.SerializeResponseOK(response, nil)
		if err != nil {
			return events.APIGatewayV2HTTPResponse{}, err
		}
		if fullFetch && result.Complete() && s.Cache != nil {
			s.Cache.Put(ctx, string(resourceType), cacheQuery, []byte(resp.Body))
		}
		entry.StatusCode = resp.StatusCode
		entry.DurationMillis = time.Since(start).Milliseconds()
		s.recordAudit(ctx, entry)
		return resp, nil
	}
}

func (s *ProxyService) recordAudit(ctx context.Context, entry audit.Entry) {
	if err := s.Audit.Record(ctx, entry); err != nil {
		s.Logger.Warn("failed to record audit entry",
			slog.String("resource", entry.ResourceType),
			slog.String("error", err.Error()))
	}
}

// translateFetchError maps a first-page fetch failure onto the proxy's
// error taxonomy.
func translateFetchError(err error) exceptions.RequestError {
	var upstream *unleashed.UpstreamError
	if errors.As(err, &upstream) {
		return exceptions.UpstreamRejected(upstream.StatusCode, upstream.Body)
	}
	var timeout *unleashed.TimeoutError
	if errors.As(err, &timeout) {
		return exceptions.Timeout(timeout.Error())
	}
	var invalid *unleashed.InvalidResponseError
	if errors.As(err, &invalid) {
		return exceptions.InvalidResponse(invalid.Error())
	}
	return exceptions.InternalServer("Error processing request: " + err.Error())
}
