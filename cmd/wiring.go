package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/aakritiieee7/hrmanagementsystem/internal/adapters/archive"
	"github.com/aakritiieee7/hrmanagementsystem/internal/adapters/colleges"
	"github.com/aakritiieee7/hrmanagementsystem/internal/adapters/mq/notify"
	"github.com/aakritiieee7/hrmanagementsystem/internal/adapters/repository"
	"github.com/aakritiieee7/hrmanagementsystem/internal/adapters/resume"
	service "github.com/aakritiieee7/hrmanagementsystem/internal/app"
	"github.com/aakritiieee7/hrmanagementsystem/internal/config"
	"github.com/aakritiieee7/hrmanagementsystem/internal/domain/taxonomy"
	"github.com/aakritiieee7/hrmanagementsystem/pkg/logger"
)

// loadTaxonomy picks the combined file, the split files or the embedded default.
func loadTaxonomy(cfg *config.Config) (*taxonomy.Taxonomy, error) {
	switch {
	case cfg.TaxonomyFile != "":
		return taxonomy.Load(cfg.TaxonomyFile)
	case cfg.SkillsFile != "" || cfg.BranchesFile != "":
		return taxonomy.LoadFiles(cfg.SkillsFile, cfg.BranchesFile)
	default:
		return taxonomy.Default(), nil
	}
}

// buildService wires the configured store, taxonomy and collaborators into a
// Service. The caller owns Start/Stop.
func buildService(ctx context.Context, cfg *config.Config, log logger.Logger) (*service.Service, error) {
	tax, err := loadTaxonomy(cfg)
	if err != nil {
		return nil, err
	}

	store, err := repository.Open(ctx, cfg.StoreDriver, cfg.StoreDSN, repository.WithLogger(log.Named("store")))
	if err != nil {
		return nil, err
	}

	opts := []service.Option{
		service.WithLogger(log.Named("service")),
		service.WithStore(store),
		service.WithTaxonomy(tax),
		service.WithResumeExtractor(resume.New(
			resume.WithMaxBytes(cfg.MaxResumeBytes),
			resume.WithLogger(log.Named("resume")),
		)),
		service.WithCollegeFetcher(colleges.New(cfg.CollegesURL,
			colleges.WithTimeout(cfg.CollegesTimeout()),
			colleges.WithLogger(log.Named("colleges")),
		)),
		service.WithAllowReassign(cfg.AllowReassign),
		service.WithMaxSuggestions(cfg.MaxSuggestions),
	}

	closers := []func() error{store.Close}
	fail := func(err error) (*service.Service, error) {
		for _, c := range closers {
			err = errors.Join(err, c())
		}
		return nil, err
	}

	if cfg.AMQPURL != "" {
		pub, err := notify.DialAMQP(cfg.AMQPURL, cfg.AMQPExchange, log.Named("notify"))
		if err != nil {
			return fail(err)
		}
		closers = append(closers, pub.Close)
		opts = append(opts, service.WithPublisher(pub))
	}

	if cfg.ArchiveBucket != "" {
		arch, err := archive.NewS3(ctx, archive.Config{
			Bucket:    cfg.ArchiveBucket,
			Endpoint:  cfg.ArchiveEndpoint,
			Region:    cfg.ArchiveRegion,
			AccessKey: cfg.ArchiveAccessKey,
			SecretKey: cfg.ArchiveSecretKey,
		}, archive.WithLogger(log.Named("archive")))
		if err != nil {
			return fail(fmt.Errorf("resume archive: %w", err))
		}
		opts = append(opts, service.WithArchiver(arch))
	}

	return service.New(opts...), nil
}
