// Command browsecli is an interactive REPL for exercising
// Browse/BrowseNext/TranslateBrowsePathsToNodeIds against an in-process
// address-space, seeded with the standard namespace.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/peterh/liner"

	"addrspaced/internal/addrspace"
	"addrspaced/internal/nodestore"
)

func main() {
	timeout := flag.Duration("timeout", 5*time.Second, "Per-command timeout")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	store := nodestore.NewStandardNamespace(nil)
	sessions := addrspace.NewSessionManager(64, nil)
	svc := addrspace.NewService(store, sessions)

	fmt.Println("Address-space browse client.")
	fmt.Println("Available commands: browse/browsenext/translate/release/exit")

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	lastCP := ""

	for {
		input, err := line.Prompt("browse> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println("Aborted")
				continue
			}
			break
		}
		line.AppendHistory(input)

		args := strings.Fields(strings.TrimSpace(input))
		if len(args) == 0 {
			continue
		}
		cmd := args[0]

		ctx, cancel := context.WithTimeout(context.Background(), *timeout)

		switch cmd {
		case "browse":
			if len(args) < 2 {
				fmt.Println("Usage: browse ns=<n>;i=<n> [maxRefs]")
				cancel()
				continue
			}
			ns, id, ok := parseNumericId(args[1])
			if !ok {
				fmt.Println("Invalid node id, expected ns=<n>;i=<n>")
				cancel()
				continue
			}
			var maxRefs uint32
			if len(args) >= 3 {
				if n, err := strconv.ParseUint(args[2], 10, 32); err == nil {
					maxRefs = uint32(n)
				}
			}
			result := svc.BrowseOne(ctx, addrspace.BrowseDescription{
				NodeId:     addrspace.NewNumericNodeId(ns, id),
				Direction:  addrspace.BrowseForward,
				ResultMask: addrspace.ResultMaskAll,
			}, maxRefs)
			printBrowseResult(result)
			lastCP = result.ContinuationPoint

		case "browsenext":
			if lastCP == "" {
				fmt.Println("No continuation point to resume")
				cancel()
				continue
			}
			result := svc.BrowseNextOne(ctx, false, lastCP)
			printBrowseResult(result)
			lastCP = result.ContinuationPoint

		case "release":
			if lastCP == "" {
				fmt.Println("No continuation point to release")
				cancel()
				continue
			}
			svc.BrowseNextOne(ctx, true, lastCP)
			fmt.Println("Released")
			lastCP = ""

		case "translate":
			if len(args) < 3 {
				fmt.Println("Usage: translate ns=<n>;i=<n> <browseName> [browseName...]")
				cancel()
				continue
			}
			ns, id, ok := parseNumericId(args[1])
			if !ok {
				fmt.Println("Invalid node id, expected ns=<n>;i=<n>")
				cancel()
				continue
			}
			var elems []addrspace.RelativePathElement
			for _, name := range args[2:] {
				elems = append(elems, addrspace.RelativePathElement{
					ReferenceTypeId: nodestore.HierarchicalReferencesRef(),
					IncludeSubtypes: true,
					TargetName:      addrspace.QualifiedName{NamespaceIndex: 0, Name: name},
				})
			}
			result := svc.TranslateOne(ctx, addrspace.NewNumericNodeId(ns, id), addrspace.RelativePath{Elements: elems})
			printTranslateResult(result)

		case "exit", "quit":
			fmt.Println("Bye!")
			cancel()
			return

		default:
			fmt.Printf("Unknown command: %s\n", cmd)
		}

		cancel()
	}
}

func parseNumericId(s string) (ns uint16, id uint32, ok bool) {
	s = strings.TrimPrefix(s, "ns=")
	parts := strings.SplitN(s, ";i=", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	n, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil {
		return 0, 0, false
	}
	i, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return 0, 0, false
	}
	return uint16(n), uint32(i), true
}

func printBrowseResult(r addrspace.BrowseResult) {
	fmt.Printf("status=%s references=%d continuationPoint=%q\n", r.StatusCode, len(r.References), r.ContinuationPoint)
	for _, rd := range r.References {
		fmt.Printf("  - %s (%s) forward=%v\n", rd.BrowseName.Name, rd.NodeId.NodeId.String_(), rd.IsForward)
	}
}

func printTranslateResult(r addrspace.BrowsePathResult) {
	if len(r.Targets) == 0 {
		fmt.Println("No match")
		return
	}
	for _, t := range r.Targets {
		if t.RemainingPathIndex == addrspace.NoRemainingPath {
			fmt.Printf("  - %s (resolved)\n", t.TargetId.NodeId.String_())
		} else {
			fmt.Printf("  - %s (suspended at element %d)\n", t.TargetId.NodeId.String_(), t.RemainingPathIndex)
		}
	}
}
