// Package pprof starts optional runtime profiling for ckview.
//
// Profiling is compiled in only with the "pprof" build tag, using
// [github.com/pkg/profile]. Without the tag, [Modes] is empty and
// [Config.Start] always returns a no-op stopper.
//
//	stop := pprof.Make(
//		pprof.WithMode("cpu"),
//		pprof.WithPath(dir),
//	).Start()
//	defer stop.Stop()
//
// Each mode writes one file into the output directory (cpu.pprof,
// mem.pprof, trace.out, ...), readable with "go tool pprof". The tagged
// build also registers the [net/http/pprof] handlers on
// [net/http.DefaultServeMux].
package pprof

// Tag is the build tag required to enable profiling.
const Tag = `pprof`
