// This file extracts runner tags from parsed workflow documents.
//
// # Runner Tag Shapes
//
// A job's runs-on field takes one of three shapes, each of which yields tags:
//
//   - string:   runs-on: ubuntu-latest           -> ["ubuntu-latest"]
//   - sequence: runs-on: [self-hosted, linux]    -> ["self-hosted", "linux"]
//   - mapping:  runs-on: {group: large-runners}  -> [`{"group":"large-runners"}`]
//
// Mappings are reduced to canonical JSON (see CanonicalJSON) so the same
// runner selector written with keys in a different order yields the same tag.
//
// # Leniency
//
// Workflow files legitimately vary in shape, so extraction never fails: a
// missing or non-mapping jobs field, a job that is not a mapping, or a job
// whose runs-on is missing or falsy (null, false, "", 0) contributes nothing. Only jobs -> <id> -> runs-on is read.

package workflow

import (
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/githubnext/runner-guard/pkg/constants"
	"github.com/githubnext/runner-guard/pkg/logger"
	"github.com/goccy/go-yaml"
)

var runnerTagsLog = logger.New("workflow:runner_tags")

// ExtractRunnerTags returns the runner tags declared by every job of doc, in
// job declaration order, duplicates included. doc is normally the result of
// ParseDocument; any other value (nil, scalars, sequences) yields an empty
// slice. The result is never nil.
func ExtractRunnerTags(doc any) []string {
	tags := []string{}

	root, ok := orderedMapping(doc)
	if !ok {
		runnerTagsLog.Printf("Document is not a mapping (%T), no runner tags", doc)
		return tags
	}

	jobsValue, ok := lookup(root, constants.JobsKey)
	if !ok {
		return tags
	}
	jobs, ok := orderedMapping(jobsValue)
	if !ok {
		runnerTagsLog.Printf("jobs is not a mapping (%T), skipping", jobsValue)
		return tags
	}

	for _, job := range jobs {
		definition, ok := orderedMapping(job.Value)
		if !ok {
			runnerTagsLog.Printf("Job %v is not a mapping, skipping", job.Key)
			continue
		}
		runsOn, ok := lookup(definition, constants.RunsOnKey)
		if !ok {
			continue
		}
		jobTags := runsOnTags(runsOn)
		runnerTagsLog.Printf("Job %v: runs-on=%v", job.Key, jobTags)
		tags = append(tags, jobTags...)
	}

	return tags
}

// runsOnTags converts one runs-on value into its tags. A falsy value
// declares no runner.
func runsOnTags(value any) []string {
	if isFalsy(value) {
		return nil
	}
	switch v := value.(type) {
	case string:
		return []string{v}
	case []any:
		tags := make([]string, 0, len(v))
		for _, item := range v {
			if tag, ok := sequenceItemTag(item); ok {
				tags = append(tags, tag)
			}
		}
		return tags
	default:
		tag, err := CanonicalJSON(v)
		if err != nil {
			runnerTagsLog.Printf("Cannot serialize runs-on value %T: %v", v, err)
			return nil
		}
		return []string{tag}
	}
}

// isFalsy reports whether value is null, false, the empty string, or a
// zero or NaN number.
func isFalsy(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String:
		return rv.Len() == 0
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f == 0 || math.IsNaN(f)
	}
	return false
}

// sequenceItemTag converts one element of a runs-on sequence. Strings are kept
// verbatim and nulls dropped; anything else is serialized.
func sequenceItemTag(item any) (string, bool) {
	switch v := item.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	default:
		tag, err := CanonicalJSON(v)
		if err != nil {
			runnerTagsLog.Printf("Cannot serialize runs-on item %T: %v", v, err)
			return "", false
		}
		return tag, true
	}
}

// orderedMapping returns value's entries in a stable order. Decoded workflow
// documents are yaml.MapSlice and keep declaration order; plain Go maps have
// no order, so their keys are sorted.
func orderedMapping(value any) (yaml.MapSlice, bool) {
	switch m := value.(type) {
	case yaml.MapSlice:
		return m, true
	case map[string]any:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		slice := make(yaml.MapSlice, 0, len(m))
		for _, k := range keys {
			slice = append(slice, yaml.MapItem{Key: k, Value: m[k]})
		}
		return slice, true
	case map[any]any:
		keys := make([]string, 0, len(m))
		byKey := make(map[string]any, len(m))
		for k, v := range m {
			key := fmt.Sprint(k)
			keys = append(keys, key)
			byKey[key] = v
		}
		sort.Strings(keys)
		slice := make(yaml.MapSlice, 0, len(m))
		for _, k := range keys {
			slice = append(slice, yaml.MapItem{Key: k, Value: byKey[k]})
		}
		return slice, true
	default:
		return nil, false
	}
}

// lookup finds key in m. Keys are compared by their text so that a YAML key
// decoded as a non-string still matches.
func lookup(m yaml.MapSlice, key string) (any, bool) {
	for _, item := range m {
		if fmt.Sprint(item.Key) == key {
			return item.Value, true
		}
	}
	return nil, false
}
