// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

//go:build !debug
// +build !debug

package pdd

const _DEBUG bool = false

func (m *Manager) checktable() {}

func (m *Manager) logtable() {}
