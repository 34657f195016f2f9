// Package config резолвит профиль подключения к Flowhub API.
//
// # Обзор
//
// Профиль (Profile) — адрес сервера, API-ключ, опциональный project
// scope и настройки политики запросов (таймаут, retries, TLS).
// Resolve проверяет источники по порядку, первое совпадение побеждает:
//
//  1. Переменные окружения FLOWCTL_BASE_URL + FLOWCTL_API_KEY
//     (плюс опциональные FLOWCTL_PROJECT_ID и FLOWCTL_VERIFY_TLS).
//  2. JSON-файл flowctl.local.json или flowctl.json в рабочей
//     директории, её родителе, директории исполняемого файла или её
//     родителе. Переменная FLOWCTL_CONFIG перекрывает имя файла.
//
// Источники не смешиваются: файл читается целиком или не читается вовсе.
//
// # Детерминированность
//
// Доступ к окружению и файловой системе изолирован за интерфейсом
// Sources — Resolve полностью определяется своими входами, тесты
// не трогают глобальное состояние процесса. Реальное окружение
// подставляется через config.OS().
package config
