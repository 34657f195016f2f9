package config

import "os"

// Sources — доступ к процессному окружению, от которого зависит
// резолюция профиля. Выделен в интерфейс, чтобы Resolve была
// детерминированной функцией своих входов и тестировалась без
// манипуляций глобальным состоянием процесса.
type Sources interface {
	// Getenv возвращает значение переменной окружения ("" если не задана).
	Getenv(key string) string

	// Getwd возвращает текущую рабочую директорию.
	Getwd() (string, error)

	// Executable возвращает путь к исполняемому файлу процесса.
	Executable() (string, error)

	// ReadFile читает файл целиком.
	ReadFile(path string) ([]byte, error)
}

// OS возвращает Sources поверх реального окружения процесса.
func OS() Sources {
	return osSources{}
}

type osSources struct{}

func (osSources) Getenv(key string) string          { return os.Getenv(key) }
func (osSources) Getwd() (string, error)            { return os.Getwd() }
func (osSources) Executable() (string, error)       { return os.Executable() }
func (osSources) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }
