package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"alfredoptarigan/ats-checker/internal/config"
	"alfredoptarigan/ats-checker/internal/logger"
	"alfredoptarigan/ats-checker/internal/services"
)

const app = "ats-checker"

var rootCmd = &cobra.Command{
	Use:           app,
	Short:         "ats-checker estimates how well a PDF or DOCX resume passes applicant tracking systems",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.OutOrStdout())
	},
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	viper.SetEnvPrefix("ATS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.Flags().StringP("resume", "r", "", "path to the resume file (PDF or DOCX)")
	rootCmd.Flags().StringP("job-desc", "j", "", "path to the job description file (PDF or DOCX), optional")
	rootCmd.Flags().BoolP("breakdown", "b", false, "print the result of every criterion")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().Bool("json", false, "json format for logging")

	for _, name := range boundFlags {
		if err := viper.BindPFlag(name, lookupFlag(name)); err != nil {
			log.Fatalf("binding %s flag: %v", name, err)
		}
	}
}

var boundFlags = []string{"resume", "job-desc", "breakdown", "debug", "json"}

func lookupFlag(name string) *pflag.Flag {
	if flag := rootCmd.Flags().Lookup(name); flag != nil {
		return flag
	}
	return rootCmd.PersistentFlags().Lookup(name)
}

type runOptions struct {
	ResumePath  string
	JobDescPath string
	Breakdown   bool
}

func run(out io.Writer) error {
	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	defer zlog.Sync()

	cfg := config.Load(zlog)

	dictionary := services.DefaultDictionary()
	if cfg.Scoring.DictionaryPath != "" {
		dictionary, err = services.LoadDictionaryFile(cfg.Scoring.DictionaryPath)
		if err != nil {
			zlog.Error("loading spelling dictionary", zap.Error(err))
			return err
		}
	}

	scorer := services.NewScorer(dictionary, services.WithBulletMarker(cfg.Scoring.BulletMarker))
	atsService := services.NewATSService(services.NewExtractorRegistry(), scorer)

	opts := runOptions{
		ResumePath:  viper.GetString("resume"),
		JobDescPath: viper.GetString("job-desc"),
		Breakdown:   viper.GetBool("breakdown"),
	}

	if opts.ResumePath == "" {
		if opts, err = promptPaths(opts); err != nil {
			return err
		}
	}

	zlog.Debug("scoring resume", zap.String("resume", opts.ResumePath), zap.String("job_desc", opts.JobDescPath))

	return score(out, atsService, opts)
}

// promptPaths asks for the resume path and, unless already set, the job
// description path.
func promptPaths(opts runOptions) (runOptions, error) {
	resumePrompt := promptui.Prompt{
		Label: "Enter the path to the resume file (PDF or DOCX)",
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("a resume path is required")
			}
			return nil
		},
	}

	resumePath, err := resumePrompt.Run()
	if err != nil {
		return opts, fmt.Errorf("reading resume path: %w", err)
	}
	opts.ResumePath = strings.TrimSpace(resumePath)

	if opts.JobDescPath != "" {
		return opts, nil
	}

	jobDescPrompt := promptui.Prompt{
		Label: "Enter the path to the job description file (optional)",
	}

	jobDescPath, err := jobDescPrompt.Run()
	if err != nil {
		return opts, fmt.Errorf("reading job description path: %w", err)
	}
	opts.JobDescPath = strings.TrimSpace(jobDescPath)

	return opts, nil
}

func score(out io.Writer, atsService services.ATSService, opts runOptions) error {
	resumeText, err := atsService.ExtractFile(opts.ResumePath)
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedFormat) {
			fmt.Fprintln(out, "Unsupported resume file format. Please provide a PDF or DOCX file.")
		} else {
			fmt.Fprintf(out, "Failed to read resume: %v\n", err)
		}
		return err
	}

	var jobDescription string
	if opts.JobDescPath != "" {
		jobDescription, err = atsService.ExtractFile(opts.JobDescPath)
		if err != nil {
			if errors.Is(err, services.ErrUnsupportedFormat) {
				fmt.Fprintln(out, "Unsupported job description file format. Please provide a PDF or DOCX file.")
			} else {
				fmt.Fprintf(out, "Failed to read job description: %v\n", err)
			}
			return err
		}
	}

	printReport(out, atsService.Score(resumeText, jobDescription), opts.Breakdown)
	return nil
}

func printReport(out io.Writer, report *services.ScoreReport, breakdown bool) {
	if breakdown {
		for _, c := range report.Criteria {
			line := fmt.Sprintf("%-22s %.1f / %.1f", c.Name, c.Awarded, c.Weight)
			if c.Detail != "" {
				line += "  (" + c.Detail + ")"
			}
			fmt.Fprintln(out, line)
		}
	}
	fmt.Fprintf(out, "ATS Score: %.2f%%\n", report.Score)
}
