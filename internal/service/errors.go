package service

import "errors"

// ErrValidation помечает ошибки проверки входных данных.
// Обработчики распознают его через errors.Is и отвечают 400,
// не раскрывая внутренних ошибок
var ErrValidation = errors.New("некорректные входные данные")
