package v1

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// sseWriter SSE 응답 (data: {json}\n\n)
type sseWriter struct {
	c       *gin.Context
	flusher http.Flusher
}

// startSSE SSE 헤더를 쓰고 writer 를 돌려준다. 스트리밍을 지원하지 않으면 500 응답 후 false
func startSSE(c *gin.Context) (*sseWriter, bool) {
	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "스트리밍 응답을 지원하지 않습니다"})
		return nil, false
	}
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	return &sseWriter{c: c, flusher: flusher}, true
}

func (w *sseWriter) send(event interface{}) {
	b, err := json.Marshal(event)
	if err != nil {
		return
	}
	fmt.Fprintf(w.c.Writer, "data: %s\n\n", b)
	w.flusher.Flush()
}
