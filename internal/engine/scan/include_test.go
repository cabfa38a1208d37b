package scan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncludeParser_ParseLine(t *testing.T) {
	p := NewIncludeParser("boost")

	tests := []struct {
		name string
		line string
		want string
		ok   bool
	}{
		{name: "angle", line: "#include <boost/config.hpp>", want: "boost/config.hpp", ok: true},
		{name: "quote", line: `#include "boost/core/ref.hpp"`, want: "boost/core/ref.hpp", ok: true},
		{name: "indented", line: "  \t#  include   <boost/mpl/if.hpp>", want: "boost/mpl/if.hpp", ok: true},
		{name: "trailing comment", line: "#include <boost/a/b.hpp> // why", want: "boost/a/b.hpp", ok: true},
		{name: "no space after include", line: `#include"boost/x/yy.hpp"`, want: "boost/x/yy.hpp", ok: true},
		{name: "too short", line: "#include <boost/a>", ok: false},
		{name: "other namespace", line: "#include <vector_of_things.hpp>", ok: false},
		{name: "prefix only as substring", line: "#include <boostx/config.hpp>", ok: false},
		{name: "define", line: "#define BOOST_CONFIG_HPP_INCLUDED 1", ok: false},
		{name: "no marker", line: "include <boost/config.hpp> ok ok", ok: false},
		{name: "unterminated", line: "#include <boost/config.hpp", ok: false},
		{name: "mismatched delimiter", line: `#include <boost/config.hpp"`, ok: false},
		{name: "macro include", line: "#include BOOST_ABI_PREFIX_HEADER_FILE", ok: false},
		{name: "commented out", line: "// #include <boost/config.hpp>", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := p.ParseLine(tc.line)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestIncludeParser_CustomNamespace(t *testing.T) {
	p := NewIncludeParser("acme")
	got, ok := p.ParseLine("#include <acme/net/socket.h>")
	require.True(t, ok)
	assert.Equal(t, "acme/net/socket.h", got)

	_, ok = p.ParseLine("#include <boost/net/socket.h>")
	assert.False(t, ok)
}

func TestIncludeParser_ReadKeepsOrderAndDuplicates(t *testing.T) {
	src := strings.Join([]string{
		"#ifndef GUARD",
		"#include <boost/b/b.hpp>",
		"#include <string>",
		"#include <boost/a/a.hpp>",
		"#include <boost/b/b.hpp>",
		"#endif",
	}, "\n")

	got, err := NewIncludeParser("boost").Read(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"boost/b/b.hpp", "boost/a/a.hpp", "boost/b/b.hpp"}, got)
}

func TestDescriptorParser_Read(t *testing.T) {
	known := map[string]string{"config": "", "numeric~conversion": "", "date_time": ""}
	src := strings.Join([]string{
		"add_library(boost_foo INTERFACE)",
		"target_link_libraries(boost_foo INTERFACE Boost::config Boost::numeric_conversion)",
		"target_link_libraries(boost_foo INTERFACE Boost::date_time boost::config)",
		"# Boost::commented",
		"target_link_libraries(boost_foo PRIVATE Boost::external_thing)",
	}, "\n")

	got, err := NewDescriptorParser("boost", "~").Read(strings.NewReader(src), known)
	require.NoError(t, err)
	assert.Equal(t, []string{"config", "numeric~conversion", "date_time", "external_thing"}, got)
}
