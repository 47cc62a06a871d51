// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package telemetry exports finished statistical results to monitoring
// backends.
//
// The Sink interface decouples the comparison harness from any specific
// exporter. Four implementations are provided: NopSink discards
// everything, LogSink emits structured log records, PrometheusSink
// exposes counters and histograms keyed by test method, and MultiSink
// fans out to any combination of the others.
package telemetry
