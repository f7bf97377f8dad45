// Package main is a stdio JSON-RPC server exposing host telemetry, so
// an agent supervising several machines can query them over a pipe.
// Objects are newline-delimited JSON without framing headers; the
// process serves its stdin/stdout pair and exits when the peer
// disconnects.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/Cyclone1070/reagent/internal/hostinfo"
)

// Collector is the slice of the telemetry API the server needs; tests
// inject a stub.
type Collector interface {
	Collect(ctx context.Context) (hostinfo.Info, error)
}

func main() {
	ctx := context.Background()

	rwc := &stdioReadWriteCloser{reader: os.Stdin, writer: os.Stdout}
	stream := jsonrpc2.NewBufferedStream(rwc, jsonrpc2.PlainObjectCodec{})
	conn := jsonrpc2.NewConn(ctx, stream, newHandler(hostinfo.NewCollector()))

	<-conn.DisconnectNotify()
}

// newHandler routes the two supported methods. Anything else is a
// standard method-not-found error.
func newHandler(collector Collector) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, _ *jsonrpc2.Conn, req *jsonrpc2.Request) (interface{}, error) {
		switch req.Method {
		case "host/info":
			return collector.Collect(ctx)
		case "ping":
			return "pong", nil
		default:
			return nil, &jsonrpc2.Error{
				Code:    jsonrpc2.CodeMethodNotFound,
				Message: fmt.Sprintf("method %q not found", req.Method),
			}
		}
	})
}

type stdioReadWriteCloser struct {
	reader io.ReadCloser
	writer io.WriteCloser
}

func (s *stdioReadWriteCloser) Read(p []byte) (int, error)  { return s.reader.Read(p) }
func (s *stdioReadWriteCloser) Write(p []byte) (int, error) { return s.writer.Write(p) }
func (s *stdioReadWriteCloser) Close() error {
	_ = s.reader.Close()
	return s.writer.Close()
}
