package dispatch_test

import (
	"bufio"
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/go-dispatch/internal/dispatch"
	"github.com/angeloszaimis/go-dispatch/internal/httpmsg"
	"github.com/angeloszaimis/go-dispatch/internal/metrics"
	"github.com/angeloszaimis/go-dispatch/internal/route"
)

func TestDispatch(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Dispatch Suite")
}

var _ = Describe("Dispatcher", func() {
	var (
		log   *slog.Logger
		table *route.Table
		d     *dispatch.Dispatcher
	)

	BeforeEach(func() {
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelError, // Suppress logs in tests
		}))
		table = route.NewTable()
	})

	newDispatcher := func() *dispatch.Dispatcher {
		return dispatch.NewDispatcher(log, table, httpmsg.ParseLimits{}, nil)
	}

	get := func(path string) *httpmsg.Request {
		return &httpmsg.Request{
			Method: "GET",
			Path:   path,
			Proto:  "HTTP/1.1",
			Header: make(httpmsg.Header),
		}
	}

	Describe("DispatchRequest", func() {
		It("should serve the registered handler's payload with a 200", func() {
			err := table.Register("GET", "/health", route.HandlerFunc(func(_ *httpmsg.Request, _ route.Params) (any, error) {
				return map[string]string{"status": "ok"}, nil
			}))
			Expect(err).NotTo(HaveOccurred())
			d = newDispatcher()

			resp := d.DispatchRequest(get("/health"))

			Expect(resp.StatusCode).To(Equal(200))
			Expect(string(resp.Body)).To(Equal(`{"status":"ok"}`))
			Expect(resp.Header.Get("Content-Type")).To(Equal("application/json"))
		})

		It("should pass captured path parameters to the handler", func() {
			var captured route.Params
			err := table.Register("GET", "/items/{id}", route.HandlerFunc(func(_ *httpmsg.Request, params route.Params) (any, error) {
				captured = params
				return nil, nil
			}))
			Expect(err).NotTo(HaveOccurred())
			d = newDispatcher()

			resp := d.DispatchRequest(get("/items/42"))

			Expect(resp.StatusCode).To(Equal(204))
			Expect(captured).To(Equal(route.Params{"id": "42"}))
		})

		It("should respect a handler-chosen status", func() {
			err := table.Register("POST", "/items", route.HandlerFunc(func(_ *httpmsg.Request, _ route.Params) (any, error) {
				return httpmsg.NewResponse(201).SetBody("application/json", []byte(`{"id":1}`)), nil
			}))
			Expect(err).NotTo(HaveOccurred())
			d = newDispatcher()

			req := get("/items")
			req.Method = "POST"
			resp := d.DispatchRequest(req)

			Expect(resp.StatusCode).To(Equal(201))
		})

		Context("with no matching route", func() {
			It("should return 404 and never invoke any handler", func() {
				invoked := false
				err := table.Register("GET", "/health", route.HandlerFunc(func(_ *httpmsg.Request, _ route.Params) (any, error) {
					invoked = true
					return nil, nil
				}))
				Expect(err).NotTo(HaveOccurred())
				d = newDispatcher()

				resp := d.DispatchRequest(get("/missing"))

				Expect(resp.StatusCode).To(Equal(404))
				Expect(invoked).To(BeFalse())
			})

			It("should return 404 on an empty table", func() {
				d = newDispatcher()
				resp := d.DispatchRequest(get("/anything"))
				Expect(resp.StatusCode).To(Equal(404))
			})
		})

		Context("with a failing handler", func() {
			secret := "database password rejected for user admin"

			BeforeEach(func() {
				err := table.Register("GET", "/broken", route.HandlerFunc(func(_ *httpmsg.Request, _ route.Params) (any, error) {
					return nil, errors.New(secret)
				}))
				Expect(err).NotTo(HaveOccurred())
				d = newDispatcher()
			})

			It("should return 500 without leaking the failure detail", func() {
				resp := d.DispatchRequest(get("/broken"))

				Expect(resp.StatusCode).To(Equal(500))
				Expect(string(resp.Body)).NotTo(ContainSubstring(secret))
				Expect(string(resp.Body)).To(ContainSubstring("internal server error"))
			})
		})

		Context("with a panicking handler", func() {
			It("should contain the panic and return 500", func() {
				err := table.Register("GET", "/panic", route.HandlerFunc(func(_ *httpmsg.Request, _ route.Params) (any, error) {
					panic("corrupted index at offset 7")
				}))
				Expect(err).NotTo(HaveOccurred())
				d = newDispatcher()

				resp := d.DispatchRequest(get("/panic"))

				Expect(resp.StatusCode).To(Equal(500))
				Expect(string(resp.Body)).NotTo(ContainSubstring("corrupted index"))
			})
		})

		Context("with an unserializable handler result", func() {
			It("should return 500", func() {
				err := table.Register("GET", "/weird", route.HandlerFunc(func(_ *httpmsg.Request, _ route.Params) (any, error) {
					return func() {}, nil
				}))
				Expect(err).NotTo(HaveOccurred())
				d = newDispatcher()

				resp := d.DispatchRequest(get("/weird"))
				Expect(resp.StatusCode).To(Equal(500))
			})
		})
	})

	Describe("Dispatch", func() {
		It("should parse, match, and respond in one pass", func() {
			err := table.Register("GET", "/health", route.HandlerFunc(func(_ *httpmsg.Request, _ route.Params) (any, error) {
				return map[string]string{"status": "ok"}, nil
			}))
			Expect(err).NotTo(HaveOccurred())
			d = newDispatcher()

			raw := "GET /health HTTP/1.1\r\nHost: localhost\r\n\r\n"
			resp, req, err := d.Dispatch(bufio.NewReader(strings.NewReader(raw)))

			Expect(err).NotTo(HaveOccurred())
			Expect(req).NotTo(BeNil())
			Expect(resp.StatusCode).To(Equal(200))
			Expect(string(resp.Body)).To(Equal(`{"status":"ok"}`))
		})

		It("should return 400 for an unparsable request line without invoking any handler", func() {
			invoked := false
			err := table.Register("GET", "/health", route.HandlerFunc(func(_ *httpmsg.Request, _ route.Params) (any, error) {
				invoked = true
				return nil, nil
			}))
			Expect(err).NotTo(HaveOccurred())
			d = newDispatcher()

			resp, req, err := d.Dispatch(bufio.NewReader(strings.NewReader("NONSENSE\r\n\r\n")))

			Expect(err).NotTo(HaveOccurred())
			Expect(req).To(BeNil())
			Expect(resp.StatusCode).To(Equal(400))
			Expect(invoked).To(BeFalse())
		})

		It("should return 400 for an unparsable header block", func() {
			d = newDispatcher()

			raw := "GET /health HTTP/1.1\r\nthis is not a header\r\n\r\n"
			resp, _, err := d.Dispatch(bufio.NewReader(strings.NewReader(raw)))

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(400))
		})

		It("should surface a clean connection close instead of a response", func() {
			d = newDispatcher()

			resp, req, err := d.Dispatch(bufio.NewReader(strings.NewReader("")))

			Expect(err).To(HaveOccurred())
			Expect(resp).To(BeNil())
			Expect(req).To(BeNil())
		})
	})

	Describe("metrics emission", func() {
		var (
			collector *metrics.Collector
			ctx       context.Context
			cancel    context.CancelFunc
		)

		BeforeEach(func() {
			ctx, cancel = context.WithCancel(context.Background())
			collector = metrics.NewCollector(100, log)
			collector.Start(ctx)
		})

		AfterEach(func() {
			cancel()
			time.Sleep(10 * time.Millisecond) // Allow goroutine to finish
		})

		It("should record success outcomes against the route pattern", func() {
			err := table.Register("GET", "/items/{id}", route.HandlerFunc(func(_ *httpmsg.Request, _ route.Params) (any, error) {
				return "ok", nil
			}))
			Expect(err).NotTo(HaveOccurred())
			d = dispatch.NewDispatcher(log, table, httpmsg.ParseLimits{}, collector)

			d.DispatchRequest(get("/items/1"))
			time.Sleep(20 * time.Millisecond)

			snap := collector.Snapshot()
			Expect(snap.Outcomes[metrics.OutcomeSuccess]).To(Equal(int64(1)))
			Expect(snap.Routes["/items/{id}"].Requests).To(Equal(int64(1)))
		})

		It("should record unmatched outcomes without a route label", func() {
			d = dispatch.NewDispatcher(log, table, httpmsg.ParseLimits{}, collector)

			d.DispatchRequest(get("/nowhere"))
			time.Sleep(20 * time.Millisecond)

			snap := collector.Snapshot()
			Expect(snap.Outcomes[metrics.OutcomeUnmatched]).To(Equal(int64(1)))
			Expect(snap.Routes).NotTo(HaveKey(""))
		})

		It("should record handler failures", func() {
			err := table.Register("GET", "/broken", route.HandlerFunc(func(_ *httpmsg.Request, _ route.Params) (any, error) {
				return nil, errors.New("boom")
			}))
			Expect(err).NotTo(HaveOccurred())
			d = dispatch.NewDispatcher(log, table, httpmsg.ParseLimits{}, collector)

			d.DispatchRequest(get("/broken"))
			time.Sleep(20 * time.Millisecond)

			snap := collector.Snapshot()
			Expect(snap.Outcomes[metrics.OutcomeHandlerFailure]).To(Equal(int64(1)))
		})
	})
})
