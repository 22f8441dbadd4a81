package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/splunk-releases/releases"
	"github.com/splunk-releases/releases/checksum"
	"github.com/splunk-releases/releases/config"
	"github.com/splunk-releases/releases/download"
	"github.com/splunk-releases/releases/inmem"
	"github.com/splunk-releases/releases/scrape"
	"github.com/splunk-releases/releases/transport/cli"
)

type filterFlags struct {
	platform string
	arch     string
	version  string
	filetype string
	product  string
}

func (f *filterFlags) bind(cmd *cobra.Command) {
	defaults := config.Criteria()
	flags := cmd.PersistentFlags()
	flags.StringVarP(&f.platform, "platform", "p", defaults[releases.FieldPlatform], "Release platform, e.g. Linux")
	flags.StringVarP(&f.arch, "arch", "a", defaults[releases.FieldArch], "Release architecture, e.g. x86_64")
	flags.StringVarP(&f.version, "version", "v", defaults[releases.FieldVersion], "Release version or version prefix, e.g. 8.1")
	flags.StringVarP(&f.filetype, "filetype", "f", defaults[releases.FieldFiletype], "Release file type, e.g. tgz")
	flags.StringVarP(&f.product, "product", "r", defaults[releases.FieldProduct], "enterprise or forwarder")
}

func (f *filterFlags) criteria() releases.Criteria {
	return releases.Criteria{
		releases.FieldPlatform: f.platform,
		releases.FieldArch:     f.arch,
		releases.FieldVersion:  f.version,
		releases.FieldFiletype: f.filetype,
		releases.FieldProduct:  f.product,
	}
}

func catalogBuilder(cfg config.Config) *scrape.Builder {
	return &scrape.Builder{
		Sources: scrape.DefaultSources,
		Fetch:   scrape.AgentFetcher(cfg.HTTP.Timeout, cfg.HTTP.UserAgent),
	}
}

func newCommands(cfg config.Config) *cli.Commands {
	builder := catalogBuilder(cfg)
	return &cli.Commands{
		Store:    inmem.NewCatalogCache(builder),
		Narrower: cli.Narrower{Prompter: cli.SurveyPrompter{}, Out: os.Stdout},
		// no client timeout, release archives take minutes to download.
		Downloader: download.NewDownloader(0, cfg.HTTP.UserAgent, os.Stderr),
		Verifier:   checksum.Verifier{Fetch: builder.Fetch},
		Out:        os.Stdout,
	}
}

func newRootCommand(cfg config.Config) *cobra.Command {
	filters := &filterFlags{}

	details := func(cmd *cobra.Command, args []string) error {
		return newCommands(cfg).Details(cmd.Context(), filters.criteria())
	}

	root := &cobra.Command{
		Use:           "splunkreleases",
		Short:         "Find and download Splunk Enterprise and Universal Forwarder releases",
		Args:          cobra.NoArgs,
		RunE:          details,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	filters.bind(root)

	root.AddCommand(&cobra.Command{
		Use:    "details",
		Short:  "Print the download link of a release",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE:   details,
	})

	var algorithm string
	downloadCmd := &cobra.Command{
		Use:     "download [filename]",
		Aliases: []string{"d", "dl"},
		Short:   "Download a release, optionally verifying its checksum",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := ""
			if len(args) == 1 {
				filename = args[0]
			}
			return newCommands(cfg).Download(cmd.Context(), filters.criteria(), filename, algorithm)
		},
	}
	downloadCmd.Flags().StringVarP(&algorithm, "checksum", "c", "", "Verify the download with the md5 or sha512 checksum")
	root.AddCommand(downloadCmd)

	root.AddCommand(&cobra.Command{
		Use:   "api",
		Short: "Serve the release catalog over http",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAPI(cmd.Context(), cfg)
		},
	})
	return root
}
