package main

import (
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/funny-falcon/vecalloc/internal/memstats"
	"github.com/funny-falcon/vecalloc/mem"
)

type server struct {
	log      *zap.Logger
	workload *Workload
	metrics  fasthttp.RequestHandler
}

// handle serves GET /stats, GET /metrics and POST /run. A run builds its
// own arrays, so concurrent runs do not share state.
func (s *server) handle(ctx *fasthttp.RequestCtx) {
	switch path := string(ctx.Path()); {
	case path == "/stats" && ctx.IsGet():
		ctx.SetContentType("application/json")
		ctx.SetBody(memstats.AppendJSON(nil, mem.Snapshot()))
	case path == "/metrics" && ctx.IsGet():
		s.metrics(ctx)
	case path == "/run" && ctx.IsPost():
		s.run(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
	}
}

func (s *server) run(ctx *fasthttp.RequestCtx) {
	w := s.workload
	if body := ctx.PostBody(); len(body) > 0 {
		var err error
		if w, err = ParseWorkload(body); err != nil {
			ctx.Error(err.Error(), fasthttp.StatusBadRequest)
			return
		}
	}
	res, err := w.Run(s.log)
	if err != nil {
		ctx.Error(err.Error(), fasthttp.StatusBadRequest)
		return
	}
	logResult(s.log, res)
	out, err := memstats.Marshal(res)
	if err != nil {
		s.log.Error("encode result", zap.Error(err))
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetBody(out)
}
