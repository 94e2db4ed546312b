package routes

import (
	"context"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"unleashed-proxy/internal/exceptions"
	"unleashed-proxy/internal/routes/filters"
)

type Route func(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error)

type Service interface {
	GetRoutes() map[string]Route
}

// Router dispatches inbound events to routes keyed "METHOD:/path". Every
// proxy path is static, so dispatch is a plain map lookup behind the filter
// chain.
type Router struct {
	Filters []filters.RequestFilter
	Routes  map[string]Route
}

func NewRouter(services ...Service) *Router {
	routes := make(map[string]Route)
	for _, service := range services {
		for composite, route := range service.GetRoutes() {
			routes[composite] = route
		}
	}
	var fltrs []filters.RequestFilter
	fltrs = append(fltrs, filters.DefaultCorsFilter())
	fltrs = append(fltrs, filters.DefaultFunctionKeyFilter())
	return &Router{
		Routes:  routes,
		Filters: fltrs,
	}
}

func translateError(err error) events.APIGatewayV2HTTPResponse {
	statusCode := 500
	if re, ok := err.(exceptions.RequestError); ok {
		statusCode = re.ToServiceError().StatusCode
	}
	if se, ok := err.(*exceptions.ServiceError); ok {
		statusCode = se.StatusCode
	}
	body := err.Error()
	headers := map[string]string{
		"Content-Type":   "text/plain",
		"Content-Length": strconv.Itoa(len(body)),
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Body:       body,
		Headers:    headers,
	}
}

func (r *Router) Invoke(event events.APIGatewayV2HTTPRequest, ctx context.Context) events.APIGatewayV2HTTPResponse {
	filterContext := filters.DefaultFilterContext(event, ctx)
	for _, filter := range r.Filters {
		updatedContext, broken := filter.Filter(filterContext)
		if broken {
			return *updatedContext.Response
		}
		filterContext = updatedContext
	}
	key := filterContext.Request.RequestContext.HTTP.Method + ":" + filterContext.Request.RawPath
	if route, ok := r.Routes[key]; ok {
		resp, err := route(*filterContext.Request, *filterContext.Context)
		if err != nil {
			return translateError(err)
		}
		return resp
	}
	return translateError(exceptions.NotFound("route", event.RawPath))
}
