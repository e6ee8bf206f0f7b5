package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/qrstyle/internal/config"
	"github.com/cristianadrielbraun/qrstyle/internal/handlers"
	"github.com/cristianadrielbraun/qrstyle/internal/imgtool"
	"github.com/cristianadrielbraun/qrstyle/internal/qr"
)

var version = "v0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries what every subcommand needs after the config is loaded.
type app struct {
	configPath string
	cfg        *config.Config
	log        *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "qrstyle",
		Short:        "Stylized QR code generator",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "config.yaml", "Path to config file")

	root.AddCommand(
		newRenderCmd(a),
		newServeCmd(a),
		newConvertCmd(),
		newGreyscaleCmd(),
		newRotateCmd(),
		newTIFFCheckCmd(),
		newJPG2PDFCmd(),
		newPDFRotateCmd(),
		newPDFMergeCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "qrstyle %s\n", version)
			},
		},
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg
	a.log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(a.log)
	return nil
}

// --- render command ----------------------------------------------------------

type renderFlags struct {
	output   string
	size     int
	style    string
	radius   float64
	fg       string
	bg       string
	gradient string
	fg2      string
	padding  int
	ec       string
	symbol   int
	border   int
	encoder  string
	logo     string

	frame       bool
	label       string
	labelPos    string
	labelColor  string
	frameBg     string
	frameBorder string
	frameRadius int
	framePad    int
	labelPad    int
	fontSize    float64
	font        string
}

func newRenderCmd(a *app) *cobra.Command {
	f := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render [text]",
		Short: "Render a QR code to a PNG, JPEG or SVG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := f.request(cmd, a.cfg, args[0])
			if err != nil {
				return err
			}
			return a.runRender(req, f.output)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.output, "output", "o", "qrcode.png", "Output file; the extension selects png, jpg or svg")
	fl.IntVarP(&f.size, "size", "s", 0, "Target edge length in pixels")
	fl.StringVar(&f.style, "style", "", "Module style: squares, circles, rounded, continuous, bars-horizontal, bars-vertical")
	fl.Float64Var(&f.radius, "radius", 0, "Corner radius as a fraction of the module size (0..0.5)")
	fl.StringVar(&f.fg, "fg", "", "Foreground color")
	fl.StringVar(&f.bg, "bg", "", "Background color")
	fl.StringVar(&f.gradient, "gradient", "", "Gradient: none, horizontal, vertical, diagonal, rainbow")
	fl.StringVar(&f.fg2, "fg2", "", "Second gradient color, or none")
	fl.IntVar(&f.padding, "padding", 0, "Extra pixels around the quiet zone")
	fl.StringVar(&f.ec, "ec", "", "Error correction level: L, M, Q or H")
	fl.IntVar(&f.symbol, "symbol-version", 0, "QR version 1..40, 0 picks the smallest that fits")
	fl.IntVar(&f.border, "border", 0, "Quiet zone in modules")
	fl.StringVar(&f.encoder, "encoder", "", "Matrix encoder: yeqown or skip2")
	fl.StringVar(&f.logo, "logo", "", "PNG, JPEG or SVG logo drawn in the center")
	fl.BoolVar(&f.frame, "frame", false, "Draw a card frame around the code")
	fl.StringVar(&f.label, "label", "", "Caption text; implies --frame")
	fl.StringVar(&f.labelPos, "label-pos", "bottom", "Caption position: top or bottom")
	fl.StringVar(&f.labelColor, "label-color", "", "Caption color")
	fl.StringVar(&f.frameBg, "frame-bg", "", "Frame background color")
	fl.StringVar(&f.frameBorder, "frame-border", "", "Frame outline color, or none")
	fl.IntVar(&f.frameRadius, "frame-radius", 0, "Frame corner radius in pixels")
	fl.IntVar(&f.framePad, "frame-pad", 0, "Space between the frame edge and the code")
	fl.IntVar(&f.labelPad, "label-pad", 0, "Space around the caption text")
	fl.Float64Var(&f.fontSize, "font-size", 0, "Caption font size in pixels")
	fl.StringVar(&f.font, "font", "", "TrueType or OpenType font for the caption")
	return cmd
}

// request layers the flags the user set over the configured defaults.
func (f *renderFlags) request(cmd *cobra.Command, cfg *config.Config, text string) (qr.Request, error) {
	req := qr.Request{Text: text, Frame: qr.DefaultFrameOptions()}
	changed := cmd.Flags().Changed

	var err error
	if req.Matrix, err = cfg.MatrixOptions(); err != nil {
		return req, err
	}
	if req.Render, err = cfg.Render.RenderOptions(); err != nil {
		return req, err
	}
	req.Frame.FontPath = cfg.FontPath

	if changed("ec") {
		if req.Matrix.Level, err = qr.ParseLevel(f.ec); err != nil {
			return req, err
		}
	}
	if changed("encoder") {
		if req.Matrix.Encoder, err = qr.EncoderByName(f.encoder); err != nil {
			return req, err
		}
	}
	if changed("symbol-version") {
		req.Matrix.Version = f.symbol
	}
	if changed("border") {
		req.Matrix.Border = f.border
	}

	r := &req.Render
	if changed("size") {
		r.Size = f.size
	}
	if changed("style") {
		if r.Style, err = qr.ParseStyle(f.style); err != nil {
			return req, err
		}
	}
	if changed("radius") {
		r.Radius = f.radius
	}
	if changed("gradient") {
		if r.Gradient, err = qr.ParseGradient(f.gradient); err != nil {
			return req, err
		}
	}
	if changed("fg2") {
		if r.Gradient2, err = qr.ParseOptionalColor(f.fg2); err != nil {
			return req, err
		}
	}
	if changed("padding") {
		r.Padding = f.padding
	}
	r.Logo = f.logo
	if err := parseColorFlag(changed("fg"), f.fg, &r.Foreground); err != nil {
		return req, err
	}
	if err := parseColorFlag(changed("bg"), f.bg, &r.Background); err != nil {
		return req, err
	}

	fr := &req.Frame
	fr.Enabled = f.frame
	fr.Label = f.label
	if fr.LabelPosition, err = qr.ParseLabelPosition(f.labelPos); err != nil {
		return req, err
	}
	if changed("font-size") {
		fr.FontSize = f.fontSize
	}
	if changed("font") {
		fr.FontPath = f.font
	}
	if err := parseColorFlag(changed("label-color"), f.labelColor, &fr.LabelColor); err != nil {
		return req, err
	}
	if err := parseColorFlag(changed("frame-bg"), f.frameBg, &fr.Background); err != nil {
		return req, err
	}
	if changed("frame-border") {
		if fr.Border, err = qr.ParseOptionalColor(f.frameBorder); err != nil {
			return req, err
		}
	}
	if changed("frame-radius") {
		fr.Radius = f.frameRadius
	}
	if changed("frame-pad") {
		fr.Pad = f.framePad
	}
	if changed("label-pad") {
		fr.LabelPad = f.labelPad
	}

	if err := r.Validate(); err != nil {
		return req, err
	}
	return req, fr.Validate()
}

func parseColorFlag(set bool, v string, dst *qr.Color) error {
	if !set {
		return nil
	}
	c, err := qr.ParseColor(v)
	if err != nil {
		return err
	}
	*dst = c
	return nil
}

func (a *app) runRender(req qr.Request, output string) (err error) {
	format, err := qr.FormatFromPath(output)
	if err != nil {
		return err
	}
	if ratio, ok := qr.CheckContrast(req.Render); !ok {
		a.log.Warn("low contrast, the code may not scan", "ratio", fmt.Sprintf("%.2f", ratio))
	}

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(output)
		}
	}()

	if err := qr.WriteImage(out, req, format); err != nil {
		return err
	}
	a.log.Info("wrote QR code", "path", output, "format", format, "style", req.Render.Style.String())
	return nil
}

// --- serve command -----------------------------------------------------------

func newServeCmd(a *app) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web generator and the /api/qr endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Port = port
			}
			return a.runServe()
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port, overriding the config")
	return cmd
}

func (a *app) runServe() error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	handlers.New(a.cfg, a.log).Routes(r)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("qrstyle listening", "addr", srv.Addr, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case err := <-errCh:
		return err
	case s := <-sig:
		a.log.Info("shutting down", "signal", s.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// --- image utilities ---------------------------------------------------------

func newConvertCmd() *cobra.Command {
	var (
		opts    imgtool.ConvertOptions
		fromExt string
	)
	cmd := &cobra.Command{
		Use:   "convert <file|dir> <ext>",
		Short: "Convert an image, or every image with --from in a directory, to another format",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, ext := args[0], args[1]
			info, err := os.Stat(src)
			if err != nil {
				return err
			}
			if !info.IsDir() {
				dest, err := imgtool.ConvertFile(src, ext, opts)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), dest)
				return nil
			}
			if fromExt == "" {
				return errors.New("--from is required when converting a directory")
			}
			results, err := imgtool.ConvertDir(src, fromExt, ext, opts)
			if err != nil {
				return err
			}
			var failed int
			for _, r := range results {
				if r.Err != nil && !r.Skipped() {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d conversions failed", failed, len(results))
			}
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&fromExt, "from", "", "Source extension when converting a directory")
	fl.BoolVar(&opts.Overwrite, "overwrite", false, "Replace existing destination files")
	fl.IntVarP(&opts.Quality, "quality", "q", 0, "JPEG quality 1..100")
	fl.BoolVar(&opts.DryRun, "dry-run", false, "Log what would be converted without writing")
	fl.BoolVar(&opts.RemoveOriginal, "remove-original", false, "Delete the source after a successful conversion")
	return cmd
}

func newGreyscaleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "greyscale <in-dir> <out-dir>",
		Short: "Convert every BMP in a directory to 8-bit greyscale",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			written, err := imgtool.GreyscaleBMPDir(args[0], args[1])
			for _, p := range written {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return err
		},
	}
}

func newRotateCmd() *cobra.Command {
	var degrees float64
	cmd := &cobra.Command{
		Use:   "rotate <in-dir> <out-dir> <ext>",
		Short: "Rotate every image with the given extension counter-clockwise",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			written, err := imgtool.RotateDir(args[0], args[1], args[2], degrees)
			for _, p := range written {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return err
		},
	}
	cmd.Flags().Float64VarP(&degrees, "degrees", "d", 90, "Angle in degrees, counter-clockwise")
	return cmd
}

func newTIFFCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tiffcheck <pattern>",
		Short: "Report TIFF files whose pages are not uncompressed or PackBits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := args[0]
			if info, err := os.Stat(pattern); err == nil && info.IsDir() {
				pattern = filepath.Join(pattern, "*.tif*")
			}
			reports, err := imgtool.CheckTIFFGlob(pattern)
			if err != nil {
				return err
			}
			for _, r := range reports {
				fmt.Fprintln(cmd.OutOrStdout(), r.String())
			}
			if len(reports) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "all files OK")
			}
			return nil
		},
	}
}

func newJPG2PDFCmd() *cobra.Command {
	var removeOriginal bool
	cmd := &cobra.Command{
		Use:   "jpg2pdf <dir>",
		Short: "Write every JPEG in a directory to a single-page PDF beside it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := imgtool.JPGsToPDFs(args[0], removeOriginal)
			if err != nil {
				return err
			}
			var failed int
			for _, r := range results {
				if r.Err != nil {
					failed++
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), r.Dest)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d images could not be converted", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&removeOriginal, "remove-original", false, "Delete each JPEG after its PDF is written")
	return cmd
}

func newPDFRotateCmd() *cobra.Command {
	var degrees int
	cmd := &cobra.Command{
		Use:   "pdfrotate <in.pdf> <out.pdf>",
		Short: "Rotate every page of a PDF clockwise",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return imgtool.RotatePDF(args[0], args[1], degrees)
		},
	}
	cmd.Flags().IntVarP(&degrees, "degrees", "d", 90, "Angle in degrees, a multiple of 90")
	return cmd
}

func newPDFMergeCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "pdfmerge <in.pdf>...",
		Short: "Concatenate PDFs in the given order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return imgtool.MergePDFs(args, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "merged.pdf", "Output file")
	return cmd
}
