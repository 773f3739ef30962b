// dbpftool is a CLI utility for working with The Sims 2 DBPF package files.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/s2tools/s2ui/internal/scan"
	"github.com/s2tools/s2ui/pkg/dbpf"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "list", "ls":
		cmdList(args)
	case "extract", "x":
		cmdExtract(args)
	case "hash":
		cmdHash(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`dbpftool - The Sims 2 DBPF package utility

Usage:
  dbpftool <command> [options]

Commands:
  info <file.package>                      Show package information
  list <file.package> [-t type]            List resources (optional type tag)
  extract <file.package> <group> <instance> [output_dir]
                                           Extract a resource by id
  hash <file.package>                      Checksum every UI script resource

Examples:
  dbpftool info ui.package
  dbpftool list ui.package -t 0x856ddbac
  dbpftool extract ui.package 0x499db772 0xa9500615 ./output
  dbpftool hash CaSIEUI.data`)
}

func openPackage(path string) *dbpf.Package {
	pkg, err := dbpf.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return pkg
}

func typeName(typeID uint32) string {
	switch typeID {
	case dbpf.TypeUIData:
		return "UI script"
	case dbpf.TypeImage:
		return "image"
	case dbpf.TypeDir:
		return "directory"
	default:
		return fmt.Sprintf("0x%08x", typeID)
	}
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: dbpftool info <file.package>")
		os.Exit(1)
	}

	pkg := openPackage(args[0])
	defer pkg.Close()

	entries := pkg.Entries()

	typeCount := make(map[uint32]int)
	var totalSize, compressed uint64
	for _, e := range entries {
		typeCount[e.TypeID]++
		totalSize += uint64(e.DecompressedSize())
		if e.Compressed() {
			compressed++
		}
	}

	fmt.Printf("Package:    %s\n", args[0])
	fmt.Printf("Resources:  %d (%d compressed)\n", len(entries), compressed)
	fmt.Printf("Total size: %s\n", humanize.Bytes(totalSize))
	fmt.Println()
	fmt.Println("Resources by type:")

	type typeStat struct {
		typeID uint32
		count  int
	}
	var stats []typeStat
	for typeID, count := range typeCount {
		stats = append(stats, typeStat{typeID, count})
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].count > stats[j].count
	})

	for _, s := range stats {
		fmt.Printf("  %-12s %d\n", typeName(s.typeID), s.count)
	}
}

func cmdList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	typeFilter := fs.String("t", "", "Only list resources with this type tag (hex)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: dbpftool list <file.package> [-t type]")
		os.Exit(1)
	}

	pkg := openPackage(fs.Arg(0))
	defer pkg.Close()

	entries := pkg.Entries()
	if *typeFilter != "" {
		typeID, err := parseHexID(*typeFilter)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid type tag: %s\n", *typeFilter)
			os.Exit(1)
		}
		entries = pkg.EntriesByType(typeID)
	}

	for _, e := range entries {
		marker := " "
		if e.Compressed() {
			marker = "c"
		}
		fmt.Printf("%s 0x%08x 0x%08x %-10s %s\n",
			marker, e.GroupID, e.InstanceID, typeName(e.TypeID),
			humanize.Bytes(uint64(e.DecompressedSize())))
	}
	fmt.Fprintf(os.Stderr, "\n(%d resources)\n", len(entries))
}

func cmdExtract(args []string) {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() < 3 {
		fmt.Fprintln(os.Stderr, "Usage: dbpftool extract <file.package> <group> <instance> [output_dir]")
		os.Exit(1)
	}

	groupID, err := parseHexID(fs.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid group id: %s\n", fs.Arg(1))
		os.Exit(1)
	}
	instanceID, err := parseHexID(fs.Arg(2))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid instance id: %s\n", fs.Arg(2))
		os.Exit(1)
	}
	outputDir := "."
	if fs.NArg() > 3 {
		outputDir = fs.Arg(3)
	}

	pkg := openPackage(fs.Arg(0))
	defer pkg.Close()

	for _, e := range pkg.Entries() {
		if e.GroupID != groupID || e.InstanceID != instanceID {
			continue
		}

		data, err := e.Data()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading resource: %v\n", err)
			os.Exit(1)
		}

		outputPath := filepath.Join(outputDir, fmt.Sprintf("0x%08x_0x%08x.bin", groupID, instanceID))
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating directory: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Extracted: %s (%s)\n", outputPath, humanize.Bytes(uint64(len(data))))
		return
	}

	fmt.Fprintf(os.Stderr, "Resource not found: 0x%08x 0x%08x\n", groupID, instanceID)
	os.Exit(1)
}

// cmdHash prints the checksum of every UI script resource, in the same
// form the inspector uses to split variants.
func cmdHash(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: dbpftool hash <file.package>")
		os.Exit(1)
	}

	pkg := openPackage(args[0])
	defer pkg.Close()

	for _, e := range pkg.EntriesByType(dbpf.TypeUIData) {
		var checksum scan.Checksum
		if e.DecompressedSize() > scan.MaxHashSize {
			checksum = scan.ChecksumBinary
		} else if data, err := e.Data(); err != nil {
			checksum = scan.ChecksumError
		} else {
			checksum = scan.ChecksumBytes(data)
		}
		fmt.Printf("0x%08x 0x%08x %s\n", e.GroupID, e.InstanceID, checksum)
	}
}

func parseHexID(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid hex id %q", s)
	}
	return uint32(v), nil
}
