package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/trackedge/trackedge/pkg/metrics"
	"gopkg.in/yaml.v3"
)

// tradeFile 离线报告的输入
//
//	setup_id: london-breakout
//	timezone: Europe/London
//	min_trades_per_hour: 3
//	trades:
//	  - symbol: EURUSD
//	    direction: long
//	    ...
type tradeFile struct {
	SetupID          string          `yaml:"setup_id"`
	Timezone         string          `yaml:"timezone"`
	MinTradesPerHour int             `yaml:"min_trades_per_hour"`
	Trades           []metrics.Trade `yaml:"trades"`
}

func newReportCmd() *cobra.Command {
	var (
		input  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "根据 YAML 交易列表离线生成 setup 统计报告",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(input)
			if err != nil {
				return err
			}
			defer f.Close()

			return writeReport(f, cmd.OutOrStdout(), output)
		},
	}

	cmd.Flags().StringVarP(&input, "file", "f", "trades.yaml", "交易列表文件")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "输出格式：json 或 yaml")
	return cmd
}

func writeReport(in io.Reader, out io.Writer, format string) error {
	if format != "json" && format != "yaml" {
		return fmt.Errorf("unsupported output format %q", format)
	}

	var file tradeFile
	if err := yaml.NewDecoder(in).Decode(&file); err != nil {
		return fmt.Errorf("failed to parse trades: %w", err)
	}

	var opts []metrics.Option
	if file.Timezone != "" {
		loc, err := time.LoadLocation(file.Timezone)
		if err != nil {
			return fmt.Errorf("invalid timezone %q: %w", file.Timezone, err)
		}
		opts = append(opts, metrics.WithLocation(loc))
	}
	if file.MinTradesPerHour > 0 {
		opts = append(opts, metrics.WithMinTradesPerHour(file.MinTradesPerHour))
	}

	report, err := metrics.BuildReport(file.SetupID, file.Trades, opts...)
	if err != nil {
		return err
	}

	if format == "yaml" {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
