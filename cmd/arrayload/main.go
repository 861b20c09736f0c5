// Command arrayload drives arrays through a scripted workload and serves the
// heap statistics it leaves behind.
package main

import (
	"flag"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/funny-falcon/vecalloc/internal/memstats"
	"github.com/funny-falcon/vecalloc/mem"
)

var workload = flag.String("workload", "", "workload file, built-in workload if empty")
var port = flag.String("port", "8080", "port to listen")
var onlyload = flag.Bool("onlyload", false, "only run the workload")
var debug = flag.Bool("debug", false, "development logging")

func main() {
	flag.Parse()

	log, err := newLogger(*debug)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	mem.SetLogger(log.Named("mem"))

	w := &DefaultWorkload
	if *workload != "" {
		if w, err = LoadWorkload(*workload); err != nil {
			log.Fatal("load workload", zap.String("path", *workload), zap.Error(err))
		}
	}

	res, err := w.Run(log)
	if err != nil {
		log.Fatal("run workload", zap.Error(err))
	}
	logResult(log, res)
	mem.CheckLeaks()

	if *onlyload {
		return
	}

	reg := memstats.NewRegistry()
	h := &server{
		log:      log,
		workload: w,
		metrics:  fasthttpadaptor.NewFastHTTPHandler(memstats.Handler(reg)),
	}
	log.Info("listening", zap.String("port", *port))
	if err := fasthttp.ListenAndServe(":"+*port, h.handle); err != nil {
		log.Fatal("serve", zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func logResult(log *zap.Logger, res Result) {
	log.Info("workload done",
		zap.String("policy", res.Policy),
		zap.Int("ops", res.Ops),
		zap.Int("elements", res.Elements),
		zap.Int("capacity", res.Capacity),
		zap.Int64("checksum", res.Checksum),
		zap.Duration("elapsed", res.Elapsed),
		zap.Int64("outstanding", res.Heap.Blocks))
}
