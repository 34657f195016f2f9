// Package cli реализует команды инструмента flowctl.
//
// # Обзор
//
// CLI — тонкая клиентская прослойка над internal/client: каждая
// команда делает один-два вызова SDK и форматирует результат.
// Вся условная логика (retry, fallback по project scope,
// классификация ошибок) живёт в клиенте, не здесь.
//
// # Ключевые компоненты
//
// ## Output
//
// Форматирование вывода. Два режима:
//   - Таблицы (text/tabwriter) — по умолчанию
//   - JSON (json.Encoder с отступами) — с флагом --json
//
// Данные выводятся в stdout, сообщения — в stderr.
//
// ## Commands
//
// Cobra-команды организованы по ресурсам:
//   - workflow: list, show, create, update, delete, activate,
//     deactivate, run, export, import
//   - execution: list, show, delete, retry
//   - credential: list, create, delete
//   - tag: list, show, create, update, delete
//   - variable: list, create, update, delete
//   - audit: generate
//
// Каждая группа создаётся фабричной функцией (NewWorkflowCmd и т.д.),
// принимающей clientFn и outputFn — замыкания для ленивого создания
// клиента (резолюция профиля) и Output после парсинга PersistentFlags.
// Ошибки уходят наверх как есть; граница main печатает рекомендацию
// через client.Diagnose.
package cli
