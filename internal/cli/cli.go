package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Mdsinan09/hcis-project/internal/config"
)

func init() {
	cobra.OnInitialize(config.Init)

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(versionCmd)

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyDeleteCmd)

	generateCmd.AddCommand(generateVoiceCmd)
	generateCmd.AddCommand(generateFaceSwapCmd)

	rootCmd.PersistentFlags().String("backend-url", "http://localhost:5000", "HCIS backend base URL")
	rootCmd.PersistentFlags().Duration("request-timeout", 0, "Timeout for JSON requests (0 = default)")
	rootCmd.PersistentFlags().Duration("upload-timeout", 0, "Timeout for multipart uploads (0 = default)")
	rootCmd.PersistentFlags().Int("history-limit", 20, "Maximum history rows to display")
	rootCmd.PersistentFlags().String("export-dir", "reports", "Directory for exported report artifacts")
	rootCmd.PersistentFlags().Bool("color", true, "Enable colored output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding root flags: %v\n", err)
		os.Exit(1)
	}

	analyzeCmd.Flags().String("text-file", "", "Optional transcript or claim text file to submit alongside")
	analyzeCmd.Flags().Bool("export", false, "Export the report after a successful analysis")
	analyzeCmd.Flags().Bool("chat", false, "Start an interactive chat about the result")

	generateVoiceCmd.Flags().String("file", "", "Reference audio or video file")
	generateVoiceCmd.Flags().String("text", "", "Text the cloned voice should speak")
	_ = generateVoiceCmd.MarkFlagRequired("file")
	_ = generateVoiceCmd.MarkFlagRequired("text")

	generateFaceSwapCmd.Flags().String("source", "", "Source video supplying the face")
	generateFaceSwapCmd.Flags().String("target", "", "Target video receiving the face")
	_ = generateFaceSwapCmd.MarkFlagRequired("source")
	_ = generateFaceSwapCmd.MarkFlagRequired("target")
}
