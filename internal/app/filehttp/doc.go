// Package filehttp реализует HTTP API файлового сервиса поверх локального диска. Эндпоинты:
//   - GET /: проверка живости, всегда 200.
//   - GET /list: JSON-массив имён сохранённых файлов.
//   - POST /upload: принимает multipart (первая часть с именем файла) или сырое тело
//     с именем в X-File-Name / X-Filename / ?filename=; отвечает 201 и {"upload_path": "<key>"}.
//   - GET /download?key=<key>: отдаёт файл как вложение.
//   - HEAD /download?key=<key>: размер и SHA-256 через служебные заголовки.
//   - GET /health: сводка по каталогу загрузок и индексу.
//   - GET /livez, /readyz, /drain, /undrain: служебные ручки для балансировщика.
//   - POST /admin/gc: ручная очистка незавершённых загрузок.
//
// Все остальные пути отдают 404.
package filehttp
