// Package client реализует HTTP-клиент Flowhub API.
//
// # Обзор
//
// Клиент строится из одного config.Profile и владеет им до конца
// жизни. Один низкоуровневый примитив Send плюс типизированные
// операции по ресурсным семействам: workflows (CRUD, activate,
// run, export), executions (list, get, delete, retry), credentials,
// tags, variables, audit.
//
//	c := client.New(profile, logger)
//	page, err := c.ListWorkflows(ctx, client.ListWorkflowsOpts{})
//
// # Retry и backoff
//
// Транспорт — hashicorp/go-retryablehttp поверх cleanhttp. Повторяются
// HTTP 429, 5xx и транзиентные сетевые ошибки; задержки экспоненциальные
// (1s, 2s, 4s, ... с потолком 10s, без jitter), каждая попытка ограничена
// таймаутом профиля. После исчерпания попыток наружу уходит последняя
// ошибка без изменений. См. transport.go.
//
// # Project scope
//
// С заданным ProjectID операции workflow-семейства сначала идут по
// scoped-пути /projects/{id}/workflows...; на 404 та же операция один
// раз повторяется по нескоуповому пути (fallback на один вызов,
// профиль не мутируется). Executions и прочие семейства не скоупятся.
//
// # Ошибки
//
// Таксономия: APIError (не-2xx), TimeoutError (попытка превысила
// таймаут), TransportError (DNS/соединение/TLS), ErrNoExecutionID
// (сервер отчитался об успехе, но без идентификатора execution).
// Diagnose — чистая функция, превращающая любую ошибку в строку
// с рекомендацией; её печатает граница CLI.
//
// # Повторный запуск не-идемпотентных операций
//
// Retry на 5xx может продублировать create/run, если сервер на самом
// деле успел выполнить запрос: идемпотентность по ключу API не
// поддерживает, клиент её не изобретает.
package client
