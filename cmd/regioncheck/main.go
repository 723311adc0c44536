package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	v1 "github.com/gemgrid/gridconfig/api/v1"
	"github.com/gemgrid/gridconfig/client"
	hzdriver "github.com/gemgrid/gridconfig/driver/hazelcast"
	"github.com/gemgrid/gridconfig/xmlconfig"
)

var setupLog logr.Logger

func main() {
	var propertiesPath string
	var connect bool
	var development bool
	flag.StringVar(&propertiesPath, "properties", "", "Path to the cache properties file.")
	flag.BoolVar(&connect, "connect", false,
		"Connect to the cluster and assemble the declared regions instead of only translating them.")
	flag.BoolVar(&development, "development", false, "Log in development mode.")
	flag.Parse()

	log := buildLogger(development)
	setupLog = log.WithName("setup")

	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: regioncheck [-properties <grid.yaml>] [-connect] <client-cache.xml> [<more.xml> ...]")
		os.Exit(2)
	}
	if connect && len(paths) > 1 {
		fmt.Fprintln(os.Stderr, "-connect checks a single document")
		os.Exit(2)
	}

	props := client.Properties{}
	if propertiesPath != "" {
		loaded, err := client.LoadProperties(propertiesPath)
		if err != nil {
			setupLog.Error(err, "unable to load properties", "path", propertiesPath)
			os.Exit(1)
		}
		props = loaded
	}

	driver := hzdriver.New(log.WithName("driver"))

	type document struct {
		raw []byte
		doc *xmlconfig.CacheDocument
	}
	documents := make([]document, len(paths))

	g, _ := errgroup.WithContext(context.Background())
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			raw, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			doc, ok := translate(raw, driver.Capabilities(), log)
			if !ok {
				return fmt.Errorf("%s does not validate", path)
			}
			documents[i] = document{raw: raw, doc: doc}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		setupLog.Error(err, "validation failed")
		os.Exit(1)
	}

	for i, path := range paths {
		printRegions(path, documents[i].doc)
	}

	if !connect {
		return
	}
	if err := checkAgainstCluster(documents[0].doc, documents[0].raw, props, driver, log); err != nil {
		setupLog.Error(err, "cluster check failed")
		os.Exit(1)
	}
}

func buildLogger(development bool) logr.Logger {
	var zl *zap.Logger
	var err error
	if development {
		zl, err = zap.NewDevelopment()
	} else {
		zl, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "unable to build logger:", err)
		os.Exit(1)
	}
	return zapr.NewLogger(zl)
}

// translate runs the document through the same translation the cache
// performs on load and reports every problem it finds in one pass.
func translate(raw []byte, caps v1.Capabilities, log logr.Logger) (*xmlconfig.CacheDocument, bool) {
	pc := xmlconfig.NewParserContext(caps, log.WithName("translate"))
	doc, err := xmlconfig.ParseClientCache(bytes.NewReader(raw), pc)
	if err != nil {
		setupLog.Error(err, "configuration does not translate")
		return nil, false
	}
	ok := true
	for _, configErr := range pc.Errors() {
		setupLog.Error(configErr, "configuration error")
		ok = false
	}
	for _, def := range doc.Regions {
		if err := v1.ValidateRegionDefinition(def); err != nil {
			setupLog.Error(err, "invalid region", "region", def.Name)
			ok = false
		}
	}
	return doc, ok
}

func printRegions(path string, doc *xmlconfig.CacheDocument) {
	fmt.Printf("%s: %d region(s)\n", path, len(doc.Regions))
	for _, def := range doc.Regions {
		extras := ""
		if def.Attributes.HasEviction() {
			extras += fmt.Sprintf(" eviction=%s", def.Attributes.Eviction.Algorithm)
		}
		if def.Attributes.HasDiskStore() {
			extras += fmt.Sprintf(" disk-dirs=%d", len(def.Attributes.DiskStore.Dirs))
		}
		fmt.Printf("  %-24s policy=%-28s listeners=%d interests=%d%s\n",
			def.Name, def.Policy, len(def.Listeners), len(def.Interests), extras)
	}
}

// checkAgainstCluster stands the cache up for real: the factory connects,
// loads the document and assembles every region. Afterwards each declared
// region is probed once more, concurrently, to prove it is reachable.
func checkAgainstCluster(doc *xmlconfig.CacheDocument, cacheXML []byte, props client.Properties, driver *hzdriver.Driver, log logr.Logger) error {
	factory := client.NewCacheFactory(driver, log.WithName("cache"))
	factory.SetProperties(props)
	factory.SetCacheXML(cacheXML)
	if err := factory.PostConstruct(); err != nil {
		if translated := factory.TranslateAccessError(err); translated != nil {
			return translated
		}
		return err
	}
	defer func() {
		if err := factory.Destroy(); err != nil {
			setupLog.Error(err, "teardown incomplete")
		}
	}()

	if conn, ok := factory.Connection().(*hzdriver.Connection); ok {
		for _, member := range conn.Members() {
			fmt.Printf("  member %s version=%s lite=%v\n", member, member.Version, member.LiteMember)
		}
	}

	cache := factory.Cache()
	g, ctx := errgroup.WithContext(context.Background())
	for _, def := range doc.Regions {
		def := def
		g.Go(func() error {
			if _, err := cache.EnsureRegion(ctx, def); err != nil {
				if translated := factory.TranslateAccessError(err); translated != nil {
					return fmt.Errorf("region %s: %w", def.Name, translated)
				}
				return fmt.Errorf("region %s: %w", def.Name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	fmt.Printf("all %d region(s) reachable on %q\n", len(doc.Regions), cache.Name())
	return nil
}
