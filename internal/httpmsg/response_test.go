package httpmsg_test

import (
	"bufio"
	"bytes"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/go-dispatch/internal/httpmsg"
)

var _ = Describe("Response", func() {
	Describe("WriteTo", func() {
		It("should write a status line, headers, and body", func() {
			resp := httpmsg.NewResponse(200).SetBody("text/plain; charset=utf-8", []byte("hello"))

			var buf bytes.Buffer
			_, err := resp.WriteTo(&buf)
			Expect(err).NotTo(HaveOccurred())

			out := buf.String()
			Expect(out).To(HavePrefix("HTTP/1.1 200 OK\r\n"))
			Expect(out).To(ContainSubstring("Content-Type: text/plain; charset=utf-8\r\n"))
			Expect(out).To(ContainSubstring("Content-Length: 5\r\n"))
			Expect(out).To(HaveSuffix("\r\n\r\nhello"))
		})

		It("should emit Content-Length 0 for an empty body", func() {
			resp := httpmsg.NewResponse(200)

			var buf bytes.Buffer
			_, err := resp.WriteTo(&buf)
			Expect(err).NotTo(HaveOccurred())
			Expect(buf.String()).To(ContainSubstring("Content-Length: 0\r\n"))
		})

		It("should omit body framing for 204", func() {
			resp := httpmsg.NewResponse(204)

			var buf bytes.Buffer
			_, err := resp.WriteTo(&buf)
			Expect(err).NotTo(HaveOccurred())
			Expect(buf.String()).NotTo(ContainSubstring("Content-Length"))
		})

		It("should override a handler-set Content-Length with the real body length", func() {
			resp := httpmsg.NewResponse(200).SetBody("text/plain", []byte("ok"))
			resp.Header.Set("Content-Length", "9999")

			var buf bytes.Buffer
			_, err := resp.WriteTo(&buf)
			Expect(err).NotTo(HaveOccurred())
			Expect(buf.String()).To(ContainSubstring("Content-Length: 2\r\n"))
			Expect(buf.String()).NotTo(ContainSubstring("9999"))
		})

		It("should normalize an out-of-range status to 500", func() {
			resp := httpmsg.NewResponse(931)

			var buf bytes.Buffer
			_, err := resp.WriteTo(&buf)
			Expect(err).NotTo(HaveOccurred())
			Expect(buf.String()).To(HavePrefix("HTTP/1.1 500 Internal Server Error\r\n"))
		})

		It("should produce output the standard library can read back", func() {
			resp := httpmsg.NewResponse(201).SetBody("application/json", []byte(`{"ok":true}`))

			var buf bytes.Buffer
			_, err := resp.WriteTo(&buf)
			Expect(err).NotTo(HaveOccurred())

			parsed, err := http.ReadResponse(bufio.NewReader(&buf), nil)
			Expect(err).NotTo(HaveOccurred())
			defer parsed.Body.Close()
			Expect(parsed.StatusCode).To(Equal(201))
			Expect(parsed.ContentLength).To(Equal(int64(11)))
		})
	})
})

var _ = Describe("Header", func() {
	It("should canonicalize keys across Set, Add, Get, and Del", func() {
		h := make(httpmsg.Header)
		h.Set("content-type", "application/json")
		h.Add("X-TAG", "a")
		h.Add("x-tag", "b")

		Expect(h.Get("Content-Type")).To(Equal("application/json"))
		Expect(h.Values("X-Tag")).To(Equal([]string{"a", "b"}))
		Expect(h.Has("X-Tag")).To(BeTrue())

		h.Del("X-TAG")
		Expect(h.Has("x-tag")).To(BeFalse())
		Expect(h.Get("x-tag")).To(Equal(""))
	})
})
