// Package telemetry настраивает structured logging (log/slog) для CLI.
//
// Логи идут в stderr и не смешиваются с данными команд в stdout.
// Уровень управляется переменной LOG_LEVEL (или debug-режимом),
// формат — переменной LOG_FORMAT.
package telemetry
