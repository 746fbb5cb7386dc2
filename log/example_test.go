package log_test

import (
	"log/slog"
	"os"

	"github.com/ardnew/ckview/log"
)

func Example() {
	logger := log.Make(os.Stdout,
		log.WithPretty(false),
		log.WithTimeLayout("none"),
		log.WithLevel(log.LevelDebug))

	logger = logger.With(slog.String("file", "hello.c"))
	logger.Debug("synced", slog.Int("lines", 25))
	logger.Trace("not shown")
	// Output:
	// level=DEBUG msg=synced file=hello.c lines=25
}

func Example_json() {
	logger := log.Make(os.Stdout,
		log.WithPretty(false),
		log.WithFormat(log.FormatJSON),
		log.WithTimeLayout("none"))

	logger.Warn("record beyond end of file", slog.Int("nb", 40))
	// Output:
	// {"level":"WARN","msg":"record beyond end of file","nb":40}
}
