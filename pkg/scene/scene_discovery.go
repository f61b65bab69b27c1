package scene

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/df07/go-weekend-raytracer/pkg/loaders"
)

// Scene types reported by discovery
const (
	TypeBuiltin = "builtin"
	TypeFile    = "file"
)

// fileIDPrefix marks scene IDs that refer to JSON files in the scenes directory
const fileIDPrefix = "file:"

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, accepted by ByName
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to the JSON file (file type only)
}

type builtinScene struct {
	info    SceneInfo
	factory func() *Scene
}

var builtinScenes = []builtinScene{
	{SceneInfo{ID: "default", Name: "default", DisplayName: "Default Scene", Description: "Diffuse and metal spheres on a diffuse ground", Type: TypeBuiltin}, NewDefaultScene},
	{SceneInfo{ID: "empty", Name: "empty", DisplayName: "Empty", Description: "No objects, background gradient only", Type: TypeBuiltin}, NewEmptyScene},
	{SceneInfo{ID: "mirrors", Name: "mirrors", DisplayName: "Mirrors", Description: "Two facing perfect mirrors over a diffuse ground", Type: TypeBuiltin}, NewMirrorsScene},
}

// ScenesDir is where JSON scene files are discovered
var ScenesDir = "scenes"

// Names returns the names of the built-in scenes
func Names() []string {
	names := make([]string, len(builtinScenes))
	for i, b := range builtinScenes {
		names[i] = b.info.Name
	}
	return names
}

// ByName builds a scene from a built-in name or a discovered "file:<name>" ID
func ByName(name string) (*Scene, error) {
	for _, b := range builtinScenes {
		if b.info.Name == name {
			return b.factory(), nil
		}
	}

	if strings.HasPrefix(name, fileIDPrefix) {
		files, err := ListSceneFiles(ScenesDir)
		if err != nil {
			return nil, err
		}
		for _, info := range files {
			if info.ID == name {
				return NewSceneFromFile(info.FilePath)
			}
		}
	}

	return nil, fmt.Errorf("unknown scene: %q", name)
}

// ListSceneFiles scans dir for *.json scene files and returns their metadata.
// A missing directory yields an empty list.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []SceneInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read scenes directory: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		info, err := ParseSceneMetadata(filePath)
		if err != nil {
			// Skip broken files, keep the rest
			fmt.Printf("Warning: skipping scene file %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseSceneMetadata loads a scene file and reports its name and description.
// Files without a name fall back to the title-cased file name.
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	nameWithoutExt := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))

	sceneInfo := SceneInfo{
		ID:          fileIDPrefix + nameWithoutExt,
		Name:        nameWithoutExt,
		DisplayName: titleCase(nameWithoutExt),
		Type:        TypeFile,
		FilePath:    filePath,
	}

	sceneFile, err := loaders.LoadScene(filePath)
	if err != nil {
		return sceneInfo, err
	}

	if sceneFile.Name != "" {
		sceneInfo.Name = sceneFile.Name
		sceneInfo.DisplayName = sceneFile.Name
	}
	sceneInfo.Description = sceneFile.Description

	return sceneInfo, nil
}

// ListAllScenes returns the built-in scenes followed by the scene files in ScenesDir
func ListAllScenes() ([]SceneInfo, error) {
	all := make([]SceneInfo, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		all = append(all, b.info)
	}

	files, err := ListSceneFiles(ScenesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list scene files: %w", err)
	}
	return append(all, files...), nil
}

// titleCase converts a filename-style string to title case
// e.g., "two-mirrors" -> "Two Mirrors"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		first, size := utf8.DecodeRuneInString(word)
		words[i] = strings.ToUpper(string(first)) + strings.ToLower(word[size:])
	}

	return strings.Join(words, " ")
}
