package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/trackedge/trackedge/internal"
)

var (
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "trackedge",
	Short: "TrackEdge - 交易日志与 setup 统计服务",
	Long:  ``,
	RunE: func(cmd *cobra.Command, args []string) error {
		return internal.Run(configFile)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config.yaml", "配置文件路径")
	rootCmd.AddCommand(newReportCmd())
}

func main() {
	// .env 不存在时忽略
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
