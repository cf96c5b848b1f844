package dispatch

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/shimlab/toolshim/internal/messages"
)

const (
	// selectorPrefix names the explicit variant selector argument. Every
	// occurrence is consumed by the dispatcher and never reaches the backend.
	selectorPrefix = "-mespv-spec="
	selectorStem   = "xespv"
	marchPrefix    = "-march="

	archTagMarker = "Tag_RISCV_arch"
	standaloneISA = "xesppie"

	readelfName     = "readelf"
	readelfAttrFlag = "-A"
)

// variantSuffixes lists the known ISA variant suffixes, newest first. The
// first entry is the default; matching honors list order.
var variantSuffixes = []string{"xespv2p2", "xespv2p1"}

// BinutilsVariants returns the recognized backend variant suffixes, newest
// first. The first entry is the default when nothing selects a variant.
func BinutilsVariants() []string {
	return append([]string(nil), variantSuffixes...)
}

// resolveBinutils picks the ISA-variant backend for a riscv32 binutils
// invocation. Selection order: the last explicit -mespv-spec= argument, the
// last -march= argument naming a known variant, the RISCV arch attributes of
// object file operands (objdump only), and finally the newest variant.
func (r *resolution) resolveBinutils() (*Plan, error) {
	suffix := suffixFromArgs(r.args[1:], r.tracer)
	if suffix == "" && strings.Contains(r.id.Name, "objdump") {
		var err error
		suffix, err = r.suffixFromObjects()
		if err != nil {
			return nil, err
		}
	}
	if suffix == "" {
		suffix = variantSuffixes[0]
	}

	backend := filepath.Join(r.binDir, r.id.Name+"-"+suffix+r.id.Ext)
	if _, err := r.sys.Stat(backend); err != nil {
		return nil, fmt.Errorf(messages.DispatchBackendMissingFmt, backend)
	}
	backend = r.shortIfNeeded(backend)
	argv := append([]string{backend}, stripArgsWithPrefix(r.args[1:], selectorPrefix)...)
	return r.plan(backend, argv), nil
}

// suffixFromArgs scans args once for both selector forms. A selector argument
// always wins over -march=, even with an empty value.
func suffixFromArgs(args []string, tracer *Tracer) string {
	var selected, fromMarch string
	for _, arg := range args {
		if value, ok := strings.CutPrefix(arg, selectorPrefix); ok {
			selected = selectorStem + value
			continue
		}
		if value, ok := strings.CutPrefix(arg, marchPrefix); ok {
			for _, v := range variantSuffixes {
				if strings.Contains(value, v) {
					fromMarch = v
					break
				}
			}
		}
	}
	if selected != "" {
		tracer.Printf(messages.DispatchTraceSuffixFmt, selected, selectorPrefix)
		return selected
	}
	if fromMarch != "" {
		tracer.Printf(messages.DispatchTraceSuffixFmt, fromMarch, marchPrefix)
	}
	return fromMarch
}

// suffixFromObjects asks the companion readelf about each object file operand
// and returns the variant named by the first RISCV arch attribute that
// matches. Operands that are not readable objects are skipped; a readelf that
// cannot be started is fatal.
func (r *resolution) suffixFromObjects() (string, error) {
	readelf := r.shortIfNeeded(filepath.Join(r.binDir, CompanionName(r.id.Name)+r.id.Ext))
	for _, arg := range r.args[1:] {
		if !isObjectFile(r.sys, arg) {
			continue
		}
		var out bytes.Buffer
		if _, err := r.sys.Run(readelf, []string{readelfAttrFlag, arg}, r.env.env, &out, io.Discard); err != nil {
			return "", fmt.Errorf(messages.DispatchCompanionRunFmt, readelf, err)
		}
		line, ok := findLine(out.String(), archTagMarker)
		if !ok {
			continue
		}
		for _, v := range variantSuffixes {
			if strings.Contains(line, v) {
				r.tracer.Printf(messages.DispatchTraceObjectFmt, arg, v)
				return v, nil
			}
		}
		if strings.Contains(line, standaloneISA) {
			r.tracer.Printf(messages.DispatchTraceObjectFmt, arg, standaloneISA)
			return standaloneISA, nil
		}
	}
	return "", nil
}

// CompanionName derives the sibling readelf name from stem by replacing
// everything after the last dash.
func CompanionName(stem string) string {
	if pos := strings.LastIndex(stem, "-"); pos >= 0 {
		return stem[:pos+1] + readelfName
	}
	return readelfName
}

// findLine returns the first line of s containing marker.
func findLine(s, marker string) (string, bool) {
	for _, line := range strings.Split(s, "\n") {
		if strings.Contains(line, marker) {
			return line, true
		}
	}
	return "", false
}
