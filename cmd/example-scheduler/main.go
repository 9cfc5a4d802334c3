// Command example-scheduler is a minimal demonstration framework scheduler
// built on the controller package: it subscribes, logs registration,
// disconnection and master errors, and declines every offer it's given. It exists to exercise the library end
// to end, not as a scaffold the core package set depends on.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/pborman/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	mesos "github.com/mesos/mesos-go/api/v1/lib"
	"github.com/mesos/mesos-go/api/v1/lib/extras/scheduler/controller"
	"github.com/mesos/mesos-go/api/v1/lib/extras/store"
	_ "github.com/mesos/mesos-go/api/v1/lib/encoding/json"
	"github.com/mesos/mesos-go/api/v1/lib/scheduler"
	"github.com/mesos/mesos-go/api/v1/lib/scheduler/calls"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file (master_hosts, max_num_resubscribe, ...)")
	flag.Parse()

	log := logrus.WithField("component", "example-scheduler")

	raw, err := loadOptions(*configPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	cfg, err := controller.BuildConfig(raw)
	if err != nil {
		log.WithError(err).Fatal("bad configuration")
	}

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("received shutdown signal")
		cancel()
	}()

	sched := &declineEverythingScheduler{log: log}
	fidStore := &store.File{Path: viper.GetString("framework_id_file")}
	if fidStore.Path == "" {
		fidStore = nil
	}

	err = controller.Run(ctx, cfg, sched,
		controller.WithLogger(log),
		controller.WithFrameworkIDStore(frameworkIDStore(fidStore)),
	)
	if err != nil {
		log.WithError(err).Error("session terminated")
		os.Exit(1)
	}
}

// frameworkIDStore adapts a possibly-nil *store.File into a nil
// controller.FrameworkIDStore (the interface itself, not a typed nil
// pointer, so the controller's `s.store != nil` check behaves correctly).
func frameworkIDStore(f *store.File) controller.FrameworkIDStore {
	if f == nil {
		return nil
	}
	return f
}

func loadOptions(path string) (map[string]interface{}, error) {
	v := viper.New()
	v.SetDefault("master_hosts", []string{"localhost:5050"})
	v.SetDefault("max_num_resubscribe", 1)
	v.SetDefault("resubscribe_interval", 0)
	v.SetDefault("heartbeat_timeout_window", 5000)
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "viper: failed to read config file")
		}
	}
	return v.AllSettings(), nil
}

type declineEverythingScheduler struct {
	log *logrus.Entry
}

func (s *declineEverythingScheduler) Init(map[string]interface{}) (*mesos.FrameworkInfo, bool, interface{}, error) {
	name := "example-scheduler"
	user := "root"
	info := &mesos.FrameworkInfo{
		User: user,
		Name: name,
	}
	return info, false, uuid.New(), nil
}

func (s *declineEverythingScheduler) Registered(info controller.Info, sub *scheduler.Event_Subscribed, userState interface{}) controller.Result {
	s.log.WithField("framework_id", info.FrameworkID.Value).Info("registered")
	return controller.Continue(userState)
}

func (s *declineEverythingScheduler) Reregistered(info controller.Info, userState interface{}) controller.Result {
	s.log.WithField("framework_id", info.FrameworkID.Value).Info("reregistered")
	return controller.Continue(userState)
}

func (s *declineEverythingScheduler) Disconnected(info controller.Info, userState interface{}) controller.Result {
	s.log.Warn("disconnected from master")
	return controller.Continue(userState)
}

func (s *declineEverythingScheduler) Error(info controller.Info, ev *scheduler.Event_Error, userState interface{}) controller.Result {
	s.log.WithField("message", ev.Message).Error("master reported an error")
	return controller.Continue(userState)
}

func (s *declineEverythingScheduler) Offers(info controller.Info, ev *scheduler.Event_Offers, userState interface{}) controller.Result {
	ids := make([]string, 0, len(ev.Offers))
	for _, o := range ev.Offers {
		ids = append(ids, o.ID)
	}
	s.log.WithField("count", len(ids)).Debug("declining offers")
	if len(ids) > 0 {
		if err := calls.CallNoData(context.Background(), info.Caller, calls.Decline(ids...)); err != nil {
			s.log.WithError(err).Warn("failed to decline offers")
		}
	}
	return controller.Continue(userState)
}
