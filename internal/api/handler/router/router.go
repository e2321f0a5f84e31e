package router

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/competitor-intel-api/pkg/apiErrors"
)

type Middleware func(http.Handler) http.Handler

// Route descreve um endpoint e a cadeia de middlewares aplicada só a ele.
// Os middlewares executam na ordem em que aparecem na lista.
type Route struct {
	Path        string
	Method      string
	Handler     http.Handler
	Middlewares []func(http.Handler) http.Handler
}

type Option func(router *Router)

func WithRoutes(routes ...Route) Option {
	return func(router *Router) {
		router.AddRoutes(routes...)
	}
}

type Router struct {
	mux    *httprouter.Router
	routes []Route
}

func New(options ...Option) *Router {
	mux := httprouter.New()
	mux.NotFound = http.HandlerFunc(notFound)
	mux.MethodNotAllowed = http.HandlerFunc(methodNotAllowed)

	router := &Router{mux: mux}
	for _, option := range options {
		option(router)
	}

	return router
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func (r *Router) AddRoutes(routes ...Route) {
	for _, route := range routes {
		r.mux.Handler(route.Method, route.Path, chain(route.Handler, route.Middlewares))
		r.routes = append(r.routes, route)
	}
}

// Routes retorna as rotas registradas, na ordem de registro
func (r *Router) Routes() []Route {
	return append([]Route(nil), r.routes...)
}

// LogRoutes registra no log a tabela de rotas, útil na subida do servidor
func (r *Router) LogRoutes() {
	for _, route := range r.routes {
		logrus.WithFields(logrus.Fields{
			"method":      route.Method,
			"path":        route.Path,
			"middlewares": len(route.Middlewares),
		}).Debug("Rota registrada")
	}
}

func chain(handler http.Handler, middlewares []func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}

	return handler
}

func notFound(w http.ResponseWriter, r *http.Request) {
	apiErrors.WriteError(w, apiErrors.ErrRouteNotFound, "Rota não encontrada", map[string]string{"path": r.URL.Path})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	apiErrors.WriteError(w, apiErrors.ErrMethodNotAllowed, "Método não permitido", map[string]string{"method": r.Method})
}
