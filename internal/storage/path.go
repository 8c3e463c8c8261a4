package storage

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	namespaceChars = regexp.MustCompile(`[^a-z0-9_]`)
	plainID        = regexp.MustCompile(`^[a-z0-9_-]+$`)
)

// PathManager maps person ids to files under the data root.
type PathManager struct {
	dataRoot  string
	namespace string
}

// NewPathManager creates a path manager rooted at dataRoot/namespace.
func NewPathManager(dataRoot, namespace string) *PathManager {
	return &PathManager{
		dataRoot:  dataRoot,
		namespace: normalizeNamespace(namespace),
	}
}

// GetPersonPath returns the record file of a person.
func (pm *PathManager) GetPersonPath(id string) string {
	return filepath.Join(pm.GetPeopleDir(), fmt.Sprintf("%s.json", normalizeID(id)))
}

// GetPeopleDir returns the directory holding person records.
func (pm *PathManager) GetPeopleDir() string {
	return filepath.Join(pm.dataRoot, pm.namespace, "people")
}

func normalizeNamespace(namespace string) string {
	if namespace == "" {
		return "default"
	}
	return namespaceChars.ReplaceAllString(strings.ToLower(namespace), "_")
}

// normalizeID keeps lower-case ascii ids readable on disk and hashes
// everything else, so ids differing only in case never share a file.
func normalizeID(id string) string {
	if plainID.MatchString(id) {
		return id
	}
	hash := md5.Sum([]byte(id))
	return hex.EncodeToString(hash[:])
}
