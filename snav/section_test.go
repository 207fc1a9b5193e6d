// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package snav_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/spatialnav/snav"
)

func TestSectionPriorityLastFocused(t *testing.T) {
	env := newFakeEnv()
	a := env.add("grid", "a", 0, 0, 10, 10)
	b := env.add("grid", "b", 20, 0, 10, 10)

	lastFocused := snav.PriorityLastFocused
	coord := snav.NewCoordinator(env, env, env, env)
	coord.AddSection(snav.Config{
		Selector: snav.SelectorTarget("grid"),
		Priority: &lastFocused,
	}, "grid")

	require.True(t, coord.FocusElement(b, "grid", nil))
	require.True(t, coord.FocusElement(a, "grid", nil)) // focus moves elsewhere
	require.True(t, coord.FocusSection(""))
	assert.Equal(t, a, coord.GetFocusedElement())
}

func TestSectionMakeFocusableAssignsTabIndex(t *testing.T) {
	env := newFakeEnv()
	a := env.add("grid", "a", 0, 0, 10, 10)

	coord := snav.NewCoordinator(env, env, env, env)
	coord.AddSection(snav.Config{Selector: snav.SelectorTarget("grid")}, "grid")

	coord.MakeFocusable("grid")

	idx, ok := env.TabIndex(a)
	require.True(t, ok)
	assert.Equal(t, -1, idx)
}

func TestSectionMakeFocusableSkipsIgnoreList(t *testing.T) {
	env := newFakeEnv()
	a := env.add("grid", "a", 0, 0, 10, 10)
	b := env.add("grid", "b", 20, 0, 10, 10)

	coord := snav.NewCoordinator(env, env, env, env)
	coord.AddSection(snav.Config{
		Selector:           snav.SelectorTarget("grid"),
		TabIndexIgnoreList: snav.ElementListTarget{b},
	}, "grid")

	coord.MakeFocusable("grid")

	_, aOk := env.TabIndex(a)
	_, bOk := env.TabIndex(b)
	assert.True(t, aOk)
	assert.False(t, bOk)
}

func TestDisabledSectionIsSkippedByFocusSection(t *testing.T) {
	env := newFakeEnv()
	env.add("grid", "a", 0, 0, 10, 10)
	b := env.add("other", "b", 20, 0, 10, 10)

	coord := snav.NewCoordinator(env, env, env, env)
	coord.AddSection(snav.Config{Selector: snav.SelectorTarget("grid")}, "grid")
	coord.AddSection(snav.Config{Selector: snav.SelectorTarget("other")}, "other")

	coord.DisableSection("grid")

	require.True(t, coord.FocusSection(""))
	assert.Equal(t, b, coord.GetFocusedElement())
}

func TestRemoveSectionByEmptyIDPanics(t *testing.T) {
	coord := snav.NewCoordinator(nil, nil, nil, nil)
	assert.Panics(t, func() { coord.RemoveSectionByID("") })
}

func TestAddSectionDuplicateIDPanics(t *testing.T) {
	coord := snav.NewCoordinator(nil, nil, nil, nil)
	coord.AddSection(snav.Config{}, "dup")
	assert.Panics(t, func() { coord.AddSection(snav.Config{}, "dup") })
}

func TestSetDefaultSectionUnknownIDPanics(t *testing.T) {
	coord := snav.NewCoordinator(nil, nil, nil, nil)
	assert.Panics(t, func() { coord.SetDefaultSection("nope") })
}
