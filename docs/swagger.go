// Package docs Seeuferweg POI Catalog API.
//
// Каталог туристических точек интереса вокруг Валензее. Сервис загружает фиды
// Glarnerland, Heidiland и Rapperswil-Zürichsee, приводит записи к единой модели POI
// и отдаёт список, подборки, статистику и избранное пользователя.
//
// Основные возможности:
// - Поиск, фильтры по типу и категориям, сортировка
// - Маркеры для карты и поиск рядом с точкой
// - Подборки лучших мест, активностей и фототочек
// - Избранное с обменом через ссылку и JSON-файл
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
