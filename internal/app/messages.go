package app

// Reply texts.
const (
	msgWelcome        = "Вітаємо у боті помічнику коледжу!"
	msgAskName        = "Ви не зареєстровані. Введіть своє ім'я та прізвище:"
	msgNameInvalid    = "Введіть ім'я та прізвище через пробіл, наприклад: Іван Петренко"
	msgChooseGroup    = "Тепер виберіть вашу групу."
	msgUnknownGroup   = "Такої групи немає. Виберіть групу зі списку."
	msgNoGroups       = "Групи ще не додані. Спробуйте пізніше командою /start."
	msgRegistered     = "Реєстрацію завершено! Ваша група: %s."
	msgNameUpdated    = "Ім'я оновлено: %s."
	msgGroupMissing   = "Вашу групу не знайдено. Оберіть її знову через /start."
	msgAskPassword    = "Введіть пароль для доступу до адмін-панелі:"
	msgBadPassword    = "Невірний пароль."
	msgAdminWelcome   = "Вхід виконано. Ви в адмін-панелі."
	msgAlreadyAdmin   = "Ви вже в адмін-панелі."
	msgAdminOnly      = "Ця команда доступна лише для адміністраторів."
	msgAdminLoggedOut = "Ви вийшли з адмін-панелі."
	msgAskNews        = "Введіть новину у форматі: Заголовок | Текст новини"
	msgNewsBadFormat  = "Невірний формат. Використовуйте: Заголовок | Текст новини"
	msgNewsAdded      = "Новину додано!"
	msgCancelled      = "Дію скасовано."
	msgNothingPending = "Немає активної дії для скасування."
	msgUnknownInput   = "Не розумію вас. Скористайтеся кнопками меню або командою /help."
	msgUnknownCommand = "Невідома команда. Список команд: /help"
	msgFailure        = "Сталася помилка. Спробуйте ще раз трохи пізніше."
	msgSessionReset   = "Сеанс скинуто. Почніть спочатку з /start."

	msgNoSchedule = "Розклад для групи %s відсутній."
	msgNoTeachers = "Список викладачів порожній."
	msgNoPeers    = "У групі %s поки немає студентів."
	msgNoNews     = "Новин поки немає."
)

const helpAnonymous = `Я бот помічник коледжу.

/start - реєстрація: ім'я та прізвище, потім група
/cancel - скасувати поточну дію
/admin - вхід в адмін-панель`

const helpRegistered = `Кнопки меню:
Мій розклад - заняття вашої групи
Викладачі - контакти викладачів
Моя група - список одногрупників
Новини - останні новини коледжу

/start - головне меню
/cancel - скасувати поточну дію
/admin - вхід в адмін-панель`

const helpAdmin = `Адмін-панель:
Додати новину - опублікувати новину у форматі "Заголовок | Текст новини"
Новини - останні новини
Викладачі - контакти викладачів

/logout - вийти з адмін-панелі
/cancel - скасувати поточну дію`
