// Command wordset builds a set of the distinct words read from files or stdin and reports how the hash table holding
// them was shaped.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/go-logr/logr"

	"github.com/bdragon300/linear-hash/hasher"
	ilog "github.com/bdragon300/linear-hash/internal/log"
	"github.com/bdragon300/linear-hash/linear"
)

const (
	defaultCapacity = 16
	defaultHash     = "fnv1a"
)

func usage() {
	log.Printf("Usage: wordset [-cap capacity] [-load factor] [-hash name] [-delete words] [file ...]\n")
	flag.PrintDefaults()
}

func showUsageAndExit(exitcode int) {
	usage()
	os.Exit(exitcode)
}

func exitOnErr(logger logr.Logger, err error, msg string, keysAndValues ...interface{}) {
	if err != nil {
		logger.Error(err, msg, keysAndValues...)
		os.Exit(1)
	}
}

type stats struct {
	words      int
	duplicates int
	deleted    int
	missing    int
}

// fill inserts every whitespace-separated word of r into table.
func fill(table *linear.Table[string], r io.Reader, st *stats) error {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		st.words++
		err := table.Insert(scanner.Text())
		switch {
		case errors.Is(err, linear.ErrDuplicateKey):
			st.duplicates++
		case err != nil:
			return err
		}
	}
	return scanner.Err()
}

// remove deletes the comma-separated words from table.
func remove(table *linear.Table[string], words string, st *stats) {
	for _, w := range strings.Split(words, ",") {
		if w == "" {
			continue
		}
		if _, err := table.Delete(w); err != nil {
			st.missing++
			continue
		}
		st.deleted++
	}
}

func main() {
	var capacity = flag.Int("cap", defaultCapacity, "Initial table capacity")
	var loadFactor = flag.Float64("load", linear.DefaultLoadFactor, "Load factor threshold in range (0,1)")
	var hashName = flag.String("hash", defaultHash, "Hash function (fnv1a,murmur3,metro,xxhash,highway)")
	var deleteWords = flag.String("delete", "", "Comma-separated words to remove after loading")
	var verbose = flag.Int("v", 0, "Verbosity level, default to -v 0 for info level messages, -v 1 for debug messages, and -v 2 for trace level message.")
	var showHelp = flag.Bool("h", false, "Show help message")

	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	if *showHelp {
		showUsageAndExit(0)
	}
	if *capacity <= 0 || *loadFactor <= 0 || *loadFactor >= 1 {
		log.Printf("invalid capacity %d or load factor %v", *capacity, *loadFactor)
		showUsageAndExit(2)
	}

	logger := ilog.GetLogger("wordset", *verbose)

	h, err := hasher.ByName(*hashName)
	exitOnErr(logger, err, "failed to select hash function")

	table, err := linear.New[string](
		*capacity, linear.Strings{},
		linear.WithLoadFactor(*loadFactor), linear.WithHasher(h), linear.WithLogger(logger.WithName("table")),
	)
	exitOnErr(logger, err, "failed to create table")
	defer table.Destroy(nil)

	var st stats
	if flag.NArg() == 0 {
		exitOnErr(logger, fill(table, os.Stdin, &st), "failed to read stdin")
	}
	for _, name := range flag.Args() {
		f, err := os.Open(name)
		exitOnErr(logger, err, "failed to open file", "file", name)
		err = fill(table, f, &st)
		f.Close()
		exitOnErr(logger, err, "failed to read file", "file", name)
	}
	remove(table, *deleteWords, &st)

	logger.V(1).Info("loaded", "words", st.words, "hash", *hashName)
	fmt.Printf("words:      %d\n", st.words)
	fmt.Printf("distinct:   %d\n", table.Len())
	fmt.Printf("duplicates: %d\n", st.duplicates)
	fmt.Printf("deleted:    %d (%d not found)\n", st.deleted, st.missing)
	fmt.Printf("capacity:   %d\n", table.Cap())
	fmt.Printf("tombstones: %d\n", table.Tombstones())
}
