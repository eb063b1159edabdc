package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/yournote/internal/imaging"
	"github.com/rcliao/yournote/internal/ocr"
	"github.com/rcliao/yournote/internal/whiteboard"
)

func init() {
	cmd := &cobra.Command{
		Use:   "whiteboard [image.png]",
		Short: "Analyze a whiteboard snapshot",
		Long: "Analyze a PNG or JPEG whiteboard snapshot. Modes: general (OCR then summary), " +
			"math (OCR then mathematical interpretation) and diagram (questions and tips). " +
			"With --describe, get feedback on a diagram from a text description instead.",
		Args: cobra.MaximumNArgs(1),
		Run:  runWhiteboard,
	}

	cmd.Flags().StringP("mode", "m", "general", "Analysis mode: general, math or diagram")
	cmd.Flags().String("describe", "", "Describe a diagram in words and get feedback on it")
	cmd.Flags().String("processed-out", "", "Write the preprocessed image (math and diagram modes) to this PNG path")
	cmd.Flags().Bool("save", false, "Save the analysis as a new note")

	RootCmd.AddCommand(cmd)
}

func runWhiteboard(cmd *cobra.Command, args []string) {
	modeStr, _ := cmd.Flags().GetString("mode")
	describe, _ := cmd.Flags().GetString("describe")
	processedOut, _ := cmd.Flags().GetString("processed-out")
	save, _ := cmd.Flags().GetBool("save")

	mode, err := whiteboard.ParseMode(modeStr)
	if err != nil {
		exitErr("mode", err)
	}
	if len(args) == 0 && describe == "" {
		exitErr("whiteboard", errors.New("pass an image path or --describe"))
	}

	gw := newGateway()
	engine := ocr.NewTesseract(cfg.OCR.TesseractPath, cfg.OCR.Language)
	analyzer := whiteboard.NewAnalyzer(gw, ocr.NewExtractor(engine, logger), logger)

	var res *whiteboard.Result
	if describe != "" {
		out, err := analyzer.Describe(cmd.Context(), describe)
		if err != nil {
			exitErr("describe", err)
		}
		res = &whiteboard.Result{Mode: whiteboard.Diagram, Analysis: out}
	} else {
		res = analyzeImage(cmd, analyzer, args[0], mode)
	}

	if processedOut != "" && res.Processed != nil {
		if err := os.WriteFile(processedOut, res.Processed, 0o644); err != nil {
			exitErr("write processed image", err)
		}
		logger.Info("processed image written", "path", processedOut)
	}

	if save {
		saveAnalysis(cmd, res)
	}

	if jsonOutput() {
		printJSON(res)
		return
	}
	if res.OCRText != "" {
		fmt.Printf("Extracted text: %s\n\n", res.OCRText)
	}
	if res.Warning != "" {
		fmt.Fprintf(os.Stderr, "warning: %s\n", res.Warning)
	}
	fmt.Println(res.Analysis)
}

func analyzeImage(cmd *cobra.Command, analyzer *whiteboard.Analyzer, path string, mode whiteboard.Mode) *whiteboard.Result {
	f, err := os.Open(path)
	if err != nil {
		exitErr("open image", err)
	}
	defer f.Close()

	img, err := imaging.Decode(f)
	if err != nil {
		exitErr("decode image", err)
	}

	res, err := analyzer.Analyze(cmd.Context(), img, mode)
	if err != nil {
		exitErr("analyze", err)
	}
	return res
}

func saveAnalysis(cmd *cobra.Command, res *whiteboard.Result) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	content := res.Analysis
	if res.OCRText != "" {
		content = "Extracted text: " + res.OCRText + "\n\n" + content
	}
	n, err := s.AddNote(cmd.Context(), "Whiteboard: "+res.Mode.Label(), content)
	if err != nil {
		exitErr("save note", err)
	}
	logger.Info("analysis saved", "note", n.ID)
	if !jsonOutput() {
		fmt.Fprintf(os.Stderr, "saved as note %s\n", n.ID)
	}
}
