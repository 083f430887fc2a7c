//go:build unix && !linux

package source

var errnoAliases []errnoAlias
