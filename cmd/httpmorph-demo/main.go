// Command httpmorph-demo drives a small batch of fingerprinted requests
// against a target URL using engine.Session, reporting aggregate metrics
// and honoring graceful shutdown on SIGINT/SIGTERM.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/arman-bd/httpmorph-go/browser"
	"github.com/arman-bd/httpmorph-go/config"
	"github.com/arman-bd/httpmorph-go/engine"
	"github.com/arman-bd/httpmorph-go/logger"
	"github.com/arman-bd/httpmorph-go/metrics"
	"github.com/arman-bd/httpmorph-go/pool"
	"github.com/arman-bd/httpmorph-go/proxy"
	"github.com/arman-bd/httpmorph-go/worker"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a JSON config file (defaults used when empty)")
		targetURL  = flag.String("url", "https://httpbin.org/get", "URL to request")
		requests   = flag.Int("requests", 10, "number of requests to issue")
		concurrent = flag.Int("concurrency", 4, "number of worker goroutines")
	)
	flag.Parse()

	log := logger.New(logger.LevelInfo)

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			log.Errorf("load config: %v", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	var proxies proxy.ProxyManager
	if cfg.ProxyFile != "" {
		if err := proxies.LoadProxies(cfg.ProxyFile); err != nil {
			log.Errorf("load proxies: %v", err)
			os.Exit(1)
		}
		log.Infof("loaded %d proxies from %s", proxies.Count(), cfg.ProxyFile)
	}

	m := metrics.NewMetrics()

	opts := []engine.Option{
		engine.WithProfile(cfg.Profile),
		engine.WithOS(browser.OS(cfg.OS)),
		engine.WithHTTP2(cfg.HTTP2),
		engine.WithPool(pool.New(cfg.MaxIdleConnsPerHost, cfg.MaxIdleConnsTotal, cfg.IdleConnTimeout)),
		engine.WithTimeouts(cfg.ConnectTimeout, cfg.ReadTimeout),
		engine.WithMaxRedirects(cfg.MaxRedirects),
		engine.WithMetrics(m),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, engine.WithVerify(engine.VerifyInsecure))
	}
	if cfg.ProxyURL != "" {
		opts = append(opts, engine.WithProxy(cfg.ProxyURL))
	}

	sess, err := engine.NewSession(opts...)
	if err != nil {
		log.Errorf("new session: %v", err)
		os.Exit(1)
	}
	defer sess.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	wp := worker.NewWorkerPool(*concurrent)
	wp.Start()

	log.Debugf("submitting %d requests across %d workers", *requests, *concurrent)

	var wg sync.WaitGroup
	for i := 0; i < *requests; i++ {
		wg.Add(1)
		wp.Submit(func() {
			defer wg.Done()

			if ctx.Err() != nil {
				return
			}

			url := *targetURL
			req := engine.NewRequest(http.MethodGet, url)
			if override := proxies.NextProxyOverride(); override != nil {
				log.Debugf("routing through proxy %s", override["https"])
				req.Proxy = override
			}

			resp, err := sess.Do(ctx, req)
			if err != nil {
				log.Errorf("request failed: %v", err)
				return
			}
			log.Infof("GET %s -> %d (%s, %s) in %dus", resp.URL, resp.StatusCode, resp.Proto, resp.JA4, resp.Timing.TotalUs)
		})
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Infof("shutdown signal received, %d requests still queued, waiting for in-flight to finish", wp.Pending())
		<-done
	}

	wp.Stop()

	total, success, failed := m.Snapshot()
	log.Infof("done: %d total, %d success, %d failed, %d redirects followed, %.2f req/s", total, success, failed, m.Redirects(), m.RequestsPerSecond())

	time.Sleep(10 * time.Millisecond) // let final log lines flush to stderr
}
