package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gallery-sync/core/config"
	"gallery-sync/core/storage"
	"gallery-sync/feature/gallery/parser"
)

// Prints how every listed key (or the keys given as arguments) is classified.
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}
	p := parser.New(cfg.Gallery, cfg.Storage.Bucket)

	var objects []storage.Object
	if len(os.Args) > 1 {
		for _, key := range os.Args[1:] {
			obj, err := storage.NewObject(key, 0, time.Now())
			if err != nil {
				log.Fatal(err)
			}
			objects = append(objects, obj)
		}
	} else {
		ctx := context.Background()
		lister, err := storage.NewLister(ctx, cfg.Storage, nil)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Listing %s/%s...\n", cfg.Storage.Bucket, p.Prefix())
		objects, err = lister.List(ctx, p.Prefix())
		if err != nil {
			log.Fatal(err)
		}
	}

	rejected := 0
	for _, obj := range objects {
		o := p.Parse(obj)
		if o.Kind == parser.KindRejected {
			rejected++
			fmt.Printf("✗ %s\n  -> rejected: %s\n", obj.Key, o.Reason)
			continue
		}
		fmt.Printf("✓ %s\n", obj.Key)
		if o.Gallery == nil {
			fmt.Printf("  ⚠️  folder %q has no date prefix, photo is not indexed\n", o.Photo.FolderName)
		} else {
			fmt.Printf("  -> gallery %q (%s, %s)\n", o.Gallery.FolderName, o.Gallery.Title, o.Gallery.EventDate)
		}
		fmt.Printf("  -> user %s, url %s\n", o.Photo.UserHandle, o.Photo.PublicURL)
	}

	fmt.Printf("\n%s\n", strings.Repeat("-", 30))
	fmt.Printf("Keys: %d, rejected: %d\n", len(objects), rejected)
}
