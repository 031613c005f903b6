package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const educationalNotice = "Educational use only: generated artifacts are for studying AI-generated content, not for misinformation or identity manipulation."

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate educational deepfake artifacts for research and awareness.",
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

var generateVoiceCmd = &cobra.Command{
	Use:   "voice",
	Short: "Clone the voice from a reference file speaking the given text.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		file, _ := cmd.Flags().GetString("file")
		text, _ := cmd.Flags().GetString("text")

		a.display.PrintWarning(educationalNotice)
		a.display.PrintInfo("Generating voice clone...")

		path, err := a.client.GenerateVoice(rootCtx, file, text)
		if err != nil {
			return fmt.Errorf("voice generation failed: %w", err)
		}
		a.display.PrintSuccess("Generated: " + path)
		return nil
	},
}

var generateFaceSwapCmd = &cobra.Command{
	Use:   "faceswap",
	Short: "Swap the face from a source video onto a target video.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		source, _ := cmd.Flags().GetString("source")
		target, _ := cmd.Flags().GetString("target")

		a.display.PrintWarning(educationalNotice)
		a.display.PrintInfo("Generating face swap...")

		path, err := a.client.GenerateFaceSwap(rootCtx, source, target)
		if err != nil {
			return fmt.Errorf("face-swap generation failed: %w", err)
		}
		a.display.PrintSuccess("Generated: " + path)
		return nil
	},
}
