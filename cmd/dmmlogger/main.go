// cmd/dmmlogger/main.go
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"dmmlogger/internal/config"
	"dmmlogger/internal/instrument"
	"dmmlogger/internal/poller"
	"dmmlogger/internal/writer"
)

func main() {
	cfgPath := flag.String("config", "", "path to YAML config file")
	fname := flag.String("f", "", "output filename root (overrides config)")
	nRec := flag.Int("nrec", 0, "number of records to record (overrides config)")
	nSamp := flag.Int("nsamp", 0, "number of samples to average per record (overrides config)")
	debug := flag.Bool("debug", false, "log instrument traffic")
	noTemp := flag.Bool("no-templog", false, "skip the temperature logger")
	flag.Parse()

	// --------------------
	// Load config, apply flag overrides, validate
	// --------------------

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if *fname != "" {
		cfg.Output.File = *fname
	}
	if *nRec > 0 {
		cfg.Run.Records = *nRec
	}
	if *nSamp > 0 {
		cfg.Run.Samples = *nSamp
	}
	if *noTemp {
		cfg.TempLog.Enabled = false
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	path := fmt.Sprintf("%s-%s.csv", cfg.Output.File, time.Now().Format("20060102150405"))

	if err := run(cfg, path, *debug); err != nil {
		log.Fatalf("run failed: %v", err)
	}
	log.Printf("finished: %s", path)
}

// run owns every session and writer lifetime so the deferred closes execute
// on all exit paths, including an abort mid-run. log.Fatalf lives only in
// main, above the defers.
func run(cfg *config.Config, path string, debug bool) error {
	writers, err := buildWriters(cfg, path, os.Stdout)
	if err != nil {
		return err
	}
	defer func() {
		if err := writers.Close(); err != nil {
			log.Printf("writer close failed: %v", err)
		}
	}()

	log.Printf("initialising DVM1")
	dvm := instrument.OpenDMM(cfg.DVM.Port, cfg.DVM.Timeout(), cfg.DVM.Range, debug)

	var sessions = []io.Closer{dvm}
	var temp poller.TemperatureSource
	if cfg.TempLog.Enabled {
		tl := instrument.OpenTempLogger(cfg.TempLog.Port, cfg.TempLog.Timeout(), debug)
		sessions = append(sessions, tl)
		temp = tl
	}

	p, err := poller.New(poller.Config{
		Samples: cfg.Run.Samples,
		Records: cfg.Run.Records,
	}, dvm, temp)
	if err != nil {
		closeSessions(sessions)
		return err
	}

	return collect(p, writers, sessions)
}

// buildWriters assembles the record sinks. When a later sink fails to come
// up, the ones already built are closed before the error returns.
func buildWriters(cfg *config.Config, path string, out io.Writer) (writer.Multi, error) {
	csvw, err := writer.NewCSV(path)
	if err != nil {
		return nil, err
	}

	writers := writer.Multi{csvw, writer.NewConsole(out)}
	if cfg.MQTT != nil {
		mq, err := writer.NewMQTT(writer.MQTTOptions{
			Server:   cfg.MQTT.Server,
			ClientID: cfg.MQTT.ClientID,
			Username: cfg.MQTT.Username,
			Password: cfg.MQTT.Password,
			Topic:    cfg.MQTT.Topic,
		})
		if err != nil {
			if cerr := writers.Close(); cerr != nil {
				log.Printf("writer close failed: %v", cerr)
			}
			return nil, err
		}
		writers = append(writers, mq)
	}
	return writers, nil
}

// collect drives the poller with deferred closes for every session, so a
// delivery failure mid-run still releases each serial port.
func collect(p *poller.Poller, sink poller.Sink, sessions []io.Closer) error {
	defer closeSessions(sessions)
	return p.Run(sink)
}

func closeSessions(sessions []io.Closer) {
	for _, s := range sessions {
		if err := s.Close(); err != nil {
			log.Printf("session close failed: %v", err)
		}
	}
}
