// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter/v2"
)

const (
	getterPathSeparator = "//"
	getterRefSeparator  = "?"
	minimumGetterParts  = 3 // scheme, host, and path
)

// fetch retrieves the configuration document. Local files are read directly;
// anything else goes through go-getter into a temporary directory that is
// removed after reading.
func fetch(ctx context.Context, src string) ([]byte, error) {
	if src == "" {
		return nil, ErrGetConfigFile
	}

	if localPath(src) {
		raw, err := os.ReadFile(expandLocal(src))
		if err != nil {
			return nil, errors.Join(ErrGetConfigFile, err)
		}

		return raw, nil
	}

	tmpDir, err := os.MkdirTemp("", "githerd-getter-*")
	if err != nil {
		return nil, errors.Join(ErrGetConfigFile, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(ErrGetConfigFile, err)
	}

	client := getter.Client{
		DisableSymlinks: true,
	}

	req := &getter.Request{
		Src:     src,
		Dst:     filepath.Join(tmpDir, "g"),
		Pwd:     wd,
		GetMode: getter.ModeDir,
	}

	var fileName string

	// Remote sources get the whole directory fetched and the file read from
	// it (https://github.com/hashicorp/go-getter/issues/98), so the file name
	// has to be split off the getter URL. filepath.Dir would collapse the
	// scheme's "//", so it is only safe for local paths.
	if ok, derr := getter.Detect(req, &getter.FileGetter{}); !ok || derr != nil {
		if derr != nil {
			return nil, errors.Join(ErrGetConfigFile, derr)
		}

		var srcURL string

		srcURL, fileName = splitFileNameFromGetterURL(src)
		if srcURL == "" || fileName == "" {
			return nil, fmt.Errorf("%w: invalid URL format: %s", ErrGetConfigFile, src)
		}

		req.Src = srcURL
	}

	if fileName == "" {
		req.Src = filepath.Dir(src)
		fileName = filepath.Base(src)
	}

	res, err := client.Get(ctx, req)
	if err != nil {
		return nil, errors.Join(ErrGetConfigFile, err)
	}

	raw, err := os.ReadFile(filepath.Join(res.Dst, fileName))
	if err != nil {
		return nil, errors.Join(ErrGetConfigFile, err)
	}

	return raw, nil
}

// splitFileNameFromGetterURL splits a go-getter URL into the directory URL
// and the file name, carrying any ref query parameter over to the new URL.
func splitFileNameFromGetterURL(url string) (string, string) {
	var ref, fileName string

	parts := strings.Split(url, getterPathSeparator)
	if len(parts) < minimumGetterParts {
		return "", ""
	}

	last := parts[len(parts)-1]

	if strings.Contains(last, getterRefSeparator) {
		refSplit := strings.Split(last, getterRefSeparator)
		if len(refSplit) > 1 {
			ref = strings.Join(refSplit[1:], "")
		}

		last = refSplit[0]
	}

	// The sub-path must actually name a file, not a bare directory.
	if filepath.Clean(last) == filepath.Dir(last) {
		return "", ""
	}

	fileName = filepath.Base(last)
	parts[len(parts)-1] = filepath.Dir(last)

	if parts[len(parts)-1] == "." {
		parts = parts[:len(parts)-1]
	}

	newURL := strings.Join(parts, getterPathSeparator)

	if ref != "" {
		newURL += getterRefSeparator + ref
	}

	return newURL, fileName
}
