//go:build tabstackdebug

package stack

const debugAssertions = true
