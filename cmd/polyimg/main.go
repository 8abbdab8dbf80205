// Command polyimg converts a Polymon JSON document into an image file. The
// image is saved next to the document, with the .json suffix replaced by the
// image extension.
//
// Examples:
//
//	# Write polymon-1.png.
//	polyimg polymon-1.json
//
//	# Write polymon-1.jpg, at 8 times the size.
//	polyimg -img-ext .jpg -scale 8 polymon-1.json
//
//	# Convert again each time the document changes, until interrupted.
//	polyimg -watch -verbose polymon-1.json
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	polymon "github.com/polymon/polymon-go"
	"github.com/polymon/polymon-go/watch"
)

var (
	imgExt  string
	scale   int
	quality int
	watchFS bool
	verbose bool
)

func init() {
	flag.StringVar(&imgExt, "img-ext", polymon.DefaultImageExt, "extension for the image to be saved into: .png, .jpg, .jpeg, .gif, .tif, .tiff or .bmp")
	flag.IntVar(&scale, "scale", 1, "upscale the 64x64 image by this integer factor, keeping pixels sharp")
	flag.IntVar(&quality, "quality", 0, "JPEG quality 1-100, 0 for the default")
	flag.BoolVar(&watchFS, "watch", false, "keep running, converting again whenever the document changes")
	flag.BoolVar(&verbose, "verbose", false, "print verbose output")
}

func usage() {
	log.Println("usage: polyimg [flags] json_path")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		usage()
	}
	os.Exit(main0(args[0]))
}

func main0(jsonPath string) int {
	imgPath, err := polymon.OutputPath(jsonPath, imgExt)
	if err != nil {
		log.Printf("%v", err)
		return 1
	}
	opts := &polymon.ConvertOpts{
		Verbose:     verbose,
		Scale:       scale,
		JPEGQuality: quality,
	}

	if err := convert(jsonPath, imgPath, opts); err != nil {
		log.Printf("%v", err)
		return 1
	}
	if !watchFS {
		return 0
	}

	w, err := watch.New(jsonPath, &watch.Opts{Verbose: verbose})
	if err != nil {
		log.Printf("new watcher: %v", err)
		return 1
	}
	defer w.Close()
	if verbose {
		log.Printf("watching %s for changes", jsonPath)
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-signals:
			return 0
		case ev, ok := <-w.Events:
			if !ok {
				log.Printf("no more events")
				return 1
			}
			if ev.Err != nil {
				log.Printf("%s", ev.Err)
				continue
			}
			if err := convert(ev.Path, imgPath, opts); err != nil {
				log.Printf("%v", err)
			}
		}
	}
}

func convert(jsonPath, imgPath string, opts *polymon.ConvertOpts) error {
	fmt.Println(jsonPath)
	fmt.Printf("Saving generated image to %s...\n", imgPath)
	if err := polymon.Convert(jsonPath, imgPath, opts); err != nil {
		return err
	}
	fmt.Println("All done!")
	return nil
}
