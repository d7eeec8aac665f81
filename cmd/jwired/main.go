// Command jwired runs a J session server: it optionally listens for
// network clients and optionally preloads a source file into the
// evaluator before serving, per spec.md §6's CLI surface.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/arloliu/jwire/compress"
	"github.com/arloliu/jwire/frameref"
	"github.com/arloliu/jwire/session"
	"github.com/arloliu/jwire/value"
)

var (
	portFlag = flag.Uint("port", 7890, "TCP `port` to listen on; 0 disables network serving.")
	fileFlag = flag.String("file", "", "Source `file` to preload before serving.")
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	if *fileFlag != "" {
		if err := preload(*fileFlag); err != nil {
			log.Fatalf("jwired: preloading %s: %v", *fileFlag, err)
		}
	}

	if *portFlag == 0 {
		return
	}

	addr := fmt.Sprintf(":%d", *portFlag)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("jwired: %v", err)
	}

	logger := logrus.New()

	srv, err := session.NewServer(listener,
		session.WithFrameCodec(frameref.NewCodec(compress.TypeZstd)),
		session.WithEvaluator(echoEvaluator),
		session.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("jwired: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Infof("listening on %s", addr)
	if err := srv.Serve(ctx); err != nil {
		log.Printf("jwired: server stopped: %v", err)
		os.Exit(1)
	}
}

// preload is a placeholder for handing a source file to the real
// evaluator; this binary ships no evaluator of its own.
func preload(path string) error {
	_, err := os.Stat(path)
	return err
}

// echoEvaluator is the binary's built-in evaluator: it returns the
// request unchanged. Real deployments supply their own session.Evaluator.
func echoEvaluator(v value.Value) (value.Value, error) {
	return v, nil
}
