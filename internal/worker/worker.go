// Package worker translates the optional worker section into the runner
// description the job-queue subsystem consumes.  Like the storage
// descriptor this is parameters only; nothing here dials redis or spawns
// anything.
package worker

import (
	"fmt"

	"github.com/yanizio/packrat/internal/config"
)

// Runner kinds.
const (
	TypeThread     = "thread"
	TypeSubprocess = "subprocess"
	TypeRedis      = "redis"
)

// Options describes the background runner to construct.  Addr and DB are
// only meaningful for the redis runner.
type Options struct {
	Type string
	Addr string
	DB   int
}

// FromSettings derives runner options from the settings tree.  An absent
// worker section means the in-process thread runner.
func FromSettings(s *config.Settings) Options {
	if s.Worker == nil {
		return Options{Type: TypeThread}
	}
	opts := Options{Type: s.Worker.Type}
	if opts.Type == TypeRedis {
		opts.Addr = fmt.Sprintf("%s:%d", s.Worker.RedisIP, s.Worker.RedisPort)
		opts.DB = s.Worker.RedisDB
	}
	return opts
}
